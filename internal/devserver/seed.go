package devserver

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"communityClient/internal/models"
)

// SeedPassword is the password of every seeded account.
const SeedPassword = "password"

var seedAccounts = []struct {
	name, email, bio string
}{
	{"Ada Lovelace", "ada@example.com", "First programmer."},
	{"Grace Hopper", "grace@example.com", "It's easier to ask forgiveness than it is to get permission."},
	{"Linus Torvalds", "linus@example.com", ""},
}

var seedPosts = []string{
	"Hello community!",
	"Anyone up for a code review this afternoon?",
	"Shipped the new release, thanks everyone.",
	"Reading about compilers again.",
	"Coffee first, then bugs.",
	"Pair programming beats rubber ducks.",
	"Tabs or spaces? Asking for a friend.",
	"The build is green.",
	"Writing docs is writing code for humans.",
	"Weekend hack: a tiny terminal client.",
	"Refactoring day.",
	"Good night, see you tomorrow.",
}

// Seed fills the store with demo accounts and a bit more than one page of posts.
func (s *Server) Seed() error {
	ids := make([]string, 0, len(seedAccounts))
	for _, a := range seedAccounts {
		user, err := s.store.CreateUser(a.name, a.email, SeedPassword)
		if err != nil {
			return fmt.Errorf("failed to seed %s: %w", a.email, err)
		}
		if _, err := s.store.UpdateProfile(user.ID, a.name, a.bio); err != nil {
			return fmt.Errorf("failed to seed %s: %w", a.email, err)
		}
		ids = append(ids, user.ID)
	}

	if _, err := s.store.ToggleFollow(ids[0], ids[1]); err != nil {
		return fmt.Errorf("failed to seed follows: %w", err)
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := s.store.now().UTC()
	for i, content := range seedPosts {
		author := ids[i%len(ids)]
		likes := models.NewIDSet()
		if i%3 == 0 {
			likes.Add(ids[(i+1)%len(ids)])
		}
		s.store.posts = append(s.store.posts, &storedPost{
			ID:        uuid.New().String(),
			AuthorID:  author,
			Content:   content,
			Likes:     likes,
			CreatedAt: now.Add(-time.Duration(len(seedPosts)-i) * time.Hour),
		})
	}
	s.store.sortedByNewest()

	return nil
}
