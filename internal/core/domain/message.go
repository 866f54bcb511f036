package domain

// ReactThumbsUp is the only react kind currently supported.
const ReactThumbsUp = 1

// ValidReactID reports whether id names a supported react kind.
func ValidReactID(id int) bool {
	return id == ReactThumbsUp
}

// React groups the users who applied one react kind to a message.
type React struct {
	ReactID int
	UserIDs []int
}

// Message is a single channel post. Ids are process-wide monotonically
// increasing integers shared across all channels and are never reused.
type Message struct {
	ID          int
	AuthorID    int
	Text        string
	TimeCreated int64
	Reacts      []React
	IsPinned    bool
}

// ReactedBy reports whether the given user has reacted to the message with
// any react kind.
func (m *Message) ReactedBy(userID int) bool {
	for _, r := range m.Reacts {
		for _, id := range r.UserIDs {
			if id == userID {
				return true
			}
		}
	}
	return false
}

// AddReact records a react by userID. Reacting twice with the same user is
// rejected as InvalidInput.
func (m *Message) AddReact(reactID, userID int) error {
	if len(m.Reacts) == 0 {
		m.Reacts = append(m.Reacts, React{ReactID: reactID, UserIDs: []int{userID}})
		return nil
	}
	// Only one react kind exists, so the slice holds at most one entry.
	r := &m.Reacts[0]
	for _, id := range r.UserIDs {
		if id == userID {
			return InvalidInputf("message is already reacted by the user")
		}
	}
	r.UserIDs = append(r.UserIDs, userID)
	return nil
}

// RemoveReact removes userID's react. Unreacting without a prior react is
// rejected as InvalidInput. An entry left without reactors is dropped.
func (m *Message) RemoveReact(reactID, userID int) error {
	if len(m.Reacts) == 0 {
		return InvalidInputf("no active react")
	}
	r := &m.Reacts[0]
	for i, id := range r.UserIDs {
		if id == userID {
			r.UserIDs = append(r.UserIDs[:i], r.UserIDs[i+1:]...)
			if len(r.UserIDs) == 0 {
				m.Reacts = m.Reacts[:0]
			}
			return nil
		}
	}
	return InvalidInputf("message has not been reacted by the user")
}
