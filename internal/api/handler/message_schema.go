package handler

import "github.com/flockr/messaging-system/internal/core/ports"

// reactJSON is the wire shape of a single react entry on a message.
type reactJSON struct {
	ReactID           int   `json:"react_id"`
	UserIDs           []int `json:"u_ids"`
	IsThisUserReacted bool  `json:"is_this_user_reacted"`
}

// messageJSON is the wire shape of a message wherever one is rendered:
// channel pages, search results and standup summaries all share it.
type messageJSON struct {
	MessageID   int         `json:"message_id"`
	UserID      int         `json:"u_id"`
	Message     string      `json:"message"`
	TimeCreated int64       `json:"time_created"`
	Reacts      []reactJSON `json:"reacts"`
	IsPinned    bool        `json:"is_pinned"`
}

func toMessageJSON(v ports.MessageView) messageJSON {
	reacts := make([]reactJSON, 0, len(v.Reacts))
	for _, r := range v.Reacts {
		reacts = append(reacts, reactJSON{
			ReactID:           r.ReactID,
			UserIDs:           r.UserIDs,
			IsThisUserReacted: r.IsThisUserReacted,
		})
	}
	return messageJSON{
		MessageID:   v.MessageID,
		UserID:      v.AuthorID,
		Message:     v.Text,
		TimeCreated: v.TimeCreated,
		Reacts:      reacts,
		IsPinned:    v.IsPinned,
	}
}

func toMessageListJSON(views []ports.MessageView) []messageJSON {
	out := make([]messageJSON, 0, len(views))
	for _, v := range views {
		out = append(out, toMessageJSON(v))
	}
	return out
}
