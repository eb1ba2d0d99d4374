package lookup

import (
	"fmt"
	"net/url"
)

// Kind tells which upstream parameter a lookup uses.
type Kind int

const (
	Identifier Kind = iota
	Title
)

// Param returns the query string parameter for the kind, both inbound and upstream.
func (k Kind) Param() string {
	switch k {
	case Identifier:
		return "i"
	case Title:
		return "t"
	default:
		return ""
	}
}

func (k Kind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Title:
		return "title"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Query is a single lookup, either by identifier or by title.
type Query struct {
	Kind  Kind
	Value string
}

func (q Query) String() string {
	return q.Kind.Param() + "=" + q.Value
}

// ParseQuery resolves the lookup from the request parameters.
// The identifier wins when both are present; values are used as-is.
func ParseQuery(values url.Values) (Query, error) {
	if id := values.Get(Identifier.Param()); id != "" {
		return Query{Kind: Identifier, Value: id}, nil
	}
	if title := values.Get(Title.Param()); title != "" {
		return Query{Kind: Title, Value: title}, nil
	}
	return Query{}, &Error{Kind: InvalidInput, Err: errMissingParam}
}
