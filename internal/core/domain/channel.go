package domain

// Channel is a membership-scoped message log. Members and owners are sets of
// user ids (insertion-ordered) resolved against the user registry at read
// time; owners are always a subset of members. A channel whose owner set
// becomes empty is deleted by the registry.
type Channel struct {
	ID       int
	Name     string
	IsPublic bool
	Owners   []int
	Members  []int
	Messages []*Message
	Standup  *StandupSession
}

// IsMember reports whether userID is in the all-member set.
func (c *Channel) IsMember(userID int) bool {
	return contains(c.Members, userID)
}

// IsOwner reports whether userID is in the owner-member set.
func (c *Channel) IsOwner(userID int) bool {
	return contains(c.Owners, userID)
}

// AddMember adds userID to the all-member set. No-op if already present.
func (c *Channel) AddMember(userID int) {
	if !contains(c.Members, userID) {
		c.Members = append(c.Members, userID)
	}
}

// AddOwner adds userID to the owner set and, to preserve the owners-are-
// members invariant, to the all-member set.
func (c *Channel) AddOwner(userID int) {
	c.AddMember(userID)
	if !contains(c.Owners, userID) {
		c.Owners = append(c.Owners, userID)
	}
}

// RemoveMember removes userID from the all-member set.
func (c *Channel) RemoveMember(userID int) {
	c.Members = remove(c.Members, userID)
}

// RemoveOwner removes userID from the owner set only; membership is kept.
func (c *Channel) RemoveOwner(userID int) {
	c.Owners = remove(c.Owners, userID)
}

// FindMessage returns the message with the given id, if present in this
// channel's log.
func (c *Channel) FindMessage(messageID int) (*Message, bool) {
	for _, m := range c.Messages {
		if m.ID == messageID {
			return m, true
		}
	}
	return nil, false
}

// DeleteMessage removes the message with the given id from the log.
func (c *Channel) DeleteMessage(messageID int) {
	for i, m := range c.Messages {
		if m.ID == messageID {
			c.Messages = append(c.Messages[:i], c.Messages[i+1:]...)
			return
		}
	}
}

func contains(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []int, id int) []int {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
