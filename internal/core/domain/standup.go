package domain

import "strings"

// StandupEntry is one buffered line, tagged with the contributor's handle at
// submission time.
type StandupEntry struct {
	Handle string
	Line   string
}

// StandupSession is the single time-boxed aggregation buffer a channel may
// hold. It is created by standup start and destroyed at flush; its lines
// become one synthesized message authored by the starter.
type StandupSession struct {
	Finish    int64
	StarterID int
	Entries   []StandupEntry
}

// Aggregate renders the buffered lines as one text blob, one
// "<handle> : <line>" per row in submission order.
func (s *StandupSession) Aggregate() string {
	var b strings.Builder
	for _, e := range s.Entries {
		b.WriteString(e.Handle)
		b.WriteString(" : ")
		b.WriteString(e.Line)
		b.WriteString("\n")
	}
	return b.String()
}
