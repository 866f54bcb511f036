package service

import (
	"regexp"
	"unicode/utf8"

	"github.com/flockr/messaging-system/internal/core/domain"
	"github.com/flockr/messaging-system/internal/infrastructure/store"
)

const (
	maxMessageLen     = 1000
	maxChannelNameLen = 20
	maxHandleLen      = 20
	minHandleLen      = 3
	maxNameLen        = 50
	minPasswordLen    = 6
)

var emailPattern = regexp.MustCompile(`^[a-z0-9]+[._]?[a-z0-9]+@\w+\.\w{2,3}$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validNameLen(name string) bool {
	n := utf8.RuneCountInString(name)
	return n >= 1 && n <= maxNameLen
}

func checkMessageLength(text string) error {
	if utf8.RuneCountInString(text) > maxMessageLen {
		return domain.InvalidInputf("message is more than %d characters long", maxMessageLen)
	}
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func findChannel(st *store.State, channelID int) (*domain.Channel, error) {
	ch, ok := st.ChannelByID(channelID)
	if !ok {
		return nil, domain.InvalidInputf("channel id is not valid")
	}
	return ch, nil
}

func findUser(st *store.State, userID int) (*domain.User, error) {
	u, ok := st.UserByID(userID)
	if !ok {
		return nil, domain.InvalidInputf("invalid user id")
	}
	return u, nil
}

// canModerate reports whether the user holds elevated rights over a message
// in the channel: platform-wide Owner or channel owner.
func canModerate(st *store.State, ch *domain.Channel, userID int) bool {
	if u, ok := st.UserByID(userID); ok && u.Role == domain.RoleOwner {
		return true
	}
	return ch.IsOwner(userID)
}
