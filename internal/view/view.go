// Package view renders client state as terminal text.
package view

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"communityClient/internal/format"
	"communityClient/internal/models"
)

var (
	brandColor  = color.New(color.FgHiCyan, color.Bold)
	nameColor   = color.New(color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
	likedColor  = color.New(color.FgHiRed, color.Bold)
	avatarColor = color.New(color.FgHiWhite, color.BgBlue, color.Bold)
	actionColor = color.New(color.FgHiGreen)
)

type View struct {
	w   io.Writer
	now func() time.Time
}

func New(w io.Writer) *View {
	return &View{w: w, now: time.Now}
}

// WithClock fixes the reference time used for relative timestamps.
func (v *View) WithClock(now func() time.Time) *View {
	return &View{w: v.w, now: now}
}

func avatar(name string) string {
	return avatarColor.Sprintf(" %s ", format.Initials(name))
}

// Navbar shows the brand and either the signed-in account or the login hint.
func (v *View) Navbar(session *models.Session) {
	brandColor.Fprint(v.w, "Community")
	if session == nil {
		fmt.Fprintf(v.w, "  %s  %s\n", mutedColor.Sprint("Home"), actionColor.Sprint("Login"))
		return
	}
	fmt.Fprintf(v.w, "  %s  %s  %s %s  %s\n",
		mutedColor.Sprint("Home"),
		mutedColor.Sprint("Profile"),
		avatar(session.Name),
		nameColor.Sprint(session.Name),
		mutedColor.Sprint("Logout"))
}

// Composer is only shown to an authenticated viewer.
func (v *View) Composer(session *models.Session, draft string) {
	if session == nil {
		return
	}
	fmt.Fprintf(v.w, "%s %s\n", avatar(session.Name),
		mutedColor.Sprintf("What's on your mind, %s?", firstName(session.Name)))
	fmt.Fprintf(v.w, "  %s\n", mutedColor.Sprint(format.CharCount(draft, models.MaxPostLength)))
}

func (v *View) PostCard(post models.Post, viewer *models.Session) {
	fmt.Fprintf(v.w, "%s %s  %s  %s\n",
		avatar(post.AuthorName),
		nameColor.Sprint(post.AuthorName),
		mutedColor.Sprint(format.RelativeTo(post.CreatedAt, v.now())),
		mutedColor.Sprintf("#%s", post.PostID))

	for _, line := range strings.Split(post.Content, "\n") {
		fmt.Fprintf(v.w, "  %s\n", line)
	}

	heart := fmt.Sprintf("♡ %d", post.LikeCount())
	if viewer != nil && post.LikedBy(viewer.UserID) {
		heart = likedColor.Sprintf("♥ %d", post.LikeCount())
	}
	actions := fmt.Sprintf("  %s  💬 %d", heart, len(post.Comments))
	if viewer != nil && viewer.UserID == post.AuthorID {
		actions += "  " + mutedColor.Sprint("[delete]")
	}
	fmt.Fprintln(v.w, actions)
}

func (v *View) Comments(comments []models.Comment) {
	for _, c := range comments {
		fmt.Fprintf(v.w, "    %s %s  %s\n", avatar(c.AuthorName), nameColor.Sprint(c.AuthorName),
			mutedColor.Sprint(format.RelativeTo(c.CreatedAt, v.now())))
		fmt.Fprintf(v.w, "      %s\n", c.Content)
	}
}

func (v *View) Feed(state models.FeedState, viewer *models.Session, withComments bool) {
	v.Composer(viewer, "")

	if len(state.Items) == 0 && !state.Loading {
		fmt.Fprintln(v.w, mutedColor.Sprint("No posts yet. Be the first to share something!"))
		return
	}

	for _, post := range state.Items {
		fmt.Fprintln(v.w)
		v.PostCard(post, viewer)
		if withComments {
			v.Comments(post.Comments)
		}
	}

	switch {
	case state.Loading:
		fmt.Fprintln(v.w, mutedColor.Sprint("Loading..."))
	case state.HasMore:
		fmt.Fprintln(v.w, actionColor.Sprint("\nLoad more"))
	}
}

// ProfileHeader shows the account with its stats. The follow button appears only for
// a signed-in viewer looking at somebody else.
func (v *View) ProfileHeader(state models.ProfileState, viewer *models.Session) {
	if !state.Loaded || state.User == nil {
		fmt.Fprintln(v.w, mutedColor.Sprint("User not found"))
		return
	}
	user := state.User

	fmt.Fprintf(v.w, "%s %s\n", avatar(user.Name), nameColor.Sprint(user.Name))
	bio := user.Bio
	if bio == "" {
		bio = "No bio yet"
	}
	fmt.Fprintf(v.w, "  %s\n", mutedColor.Sprint(bio))

	table := tablewriter.NewWriter(v.w)
	table.SetHeader([]string{"Posts", "Followers", "Following"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.Append([]string{
		fmt.Sprint(len(state.Posts)),
		fmt.Sprint(user.FollowerIDs.Len()),
		fmt.Sprint(user.FollowingIDs.Len()),
	})
	table.Render()

	if viewer != nil && viewer.UserID != user.UserID {
		if state.IsFollowing {
			fmt.Fprintln(v.w, mutedColor.Sprint("[Following]"))
		} else {
			fmt.Fprintln(v.w, actionColor.Sprint("[Follow]"))
		}
	}
}

func (v *View) Profile(state models.ProfileState, viewer *models.Session) {
	v.ProfileHeader(state, viewer)
	if !state.Loaded {
		return
	}

	if len(state.Posts) == 0 {
		fmt.Fprintln(v.w, mutedColor.Sprint("No posts yet"))
		return
	}
	for _, post := range state.Posts {
		fmt.Fprintln(v.w)
		v.PostCard(post, viewer)
	}
}

func (v *View) Session(session *models.Session) {
	if session == nil {
		fmt.Fprintln(v.w, mutedColor.Sprint("Not logged in"))
		return
	}
	fmt.Fprintf(v.w, "%s %s <%s>\n", avatar(session.Name), nameColor.Sprint(session.Name), session.Email)
	fmt.Fprintf(v.w, "  id %s, following %d, followers %d\n",
		session.UserID, session.FollowingIDs.Len(), session.FollowerIDs.Len())
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
