// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package paramlist

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrMissingKey is returned when a requested option or sub-list
	// does not exist.
	ErrMissingKey = errors.New("key not found")

	// ErrBodyAndChildren is returned when a node would carry both a
	// body and sub-lists.
	ErrBodyAndChildren = errors.New("a node cannot have both a body and sub-lists")

	// ErrAmbiguousKey is returned by [List.OptionAny] when more than
	// one of the candidate keys is present.
	ErrAmbiguousKey = errors.New("more than one alternative key present")
)

// List is one node of the attribute tree. The zero value is not usable;
// create lists with [New] or [Parse].
type List struct {
	options  map[string]string
	subLists map[string]*List
	body     string
	hasBody  bool
}

// New returns an empty list.
func New() *List {
	return &List{
		options:  make(map[string]string),
		subLists: make(map[string]*List),
	}
}

// SetOption sets a string option, replacing any previous value.
func (l *List) SetOption(key, value string) {
	l.options[key] = value
}

// SetIntOption sets an integer option.
func (l *List) SetIntOption(key string, value int) {
	l.options[key] = strconv.Itoa(value)
}

// HasOption reports whether the option exists.
func (l *List) HasOption(key string) bool {
	_, ok := l.options[key]
	return ok
}

// Option returns the string value of an option.
func (l *List) Option(key string) (string, error) {
	value, ok := l.options[key]
	if !ok {
		return "", fmt.Errorf("option %q: %w (existing: %s)", key, ErrMissingKey, strings.Join(l.OptionKeys(), ", "))
	}
	return value, nil
}

// IntOption returns the integer value of an option.
func (l *List) IntOption(key string) (int, error) {
	value, err := l.Option(key)
	if err != nil {
		return 0, err
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("option %q: %w", key, err)
	}
	return parsed, nil
}

// OptionAny looks up the first present key among alternatives, for
// attributes that were renamed between schema versions. It reports the
// key that matched; found is false when none is present. Finding more
// than one of the keys is an error because the node is then ambiguous.
func (l *List) OptionAny(keys ...string) (key, value string, found bool, err error) {
	for _, candidate := range keys {
		candidateValue, ok := l.options[candidate]
		if !ok {
			continue
		}
		if found {
			return "", "", false, fmt.Errorf("options %q and %q: %w", key, candidate, ErrAmbiguousKey)
		}
		key, value, found = candidate, candidateValue, true
	}
	return key, value, found, nil
}

// OptionKeys returns the option names in sorted order.
func (l *List) OptionKeys() []string {
	keys := make([]string, 0, len(l.options))
	for key := range l.options {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// AddSubList attaches a new empty sub-list under key and returns it. An
// existing sub-list with the same key is replaced.
func (l *List) AddSubList(key string) (*List, error) {
	if l.hasBody {
		return nil, fmt.Errorf("adding sub-list %q: %w", key, ErrBodyAndChildren)
	}
	sub := New()
	l.subLists[key] = sub
	return sub, nil
}

// HasSubList reports whether a sub-list exists.
func (l *List) HasSubList(key string) bool {
	_, ok := l.subLists[key]
	return ok
}

// SubList returns the sub-list stored under key.
func (l *List) SubList(key string) (*List, error) {
	sub, ok := l.subLists[key]
	if !ok {
		return nil, fmt.Errorf("sub-list %q: %w (existing: %s)", key, ErrMissingKey, strings.Join(l.SubListKeys(), ", "))
	}
	return sub, nil
}

// SubListKeys returns the sub-list names in sorted order.
func (l *List) SubListKeys() []string {
	keys := make([]string, 0, len(l.subLists))
	for key := range l.subLists {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// SetBody sets the node's text body.
func (l *List) SetBody(body string) error {
	if len(l.subLists) != 0 {
		return fmt.Errorf("setting body: %w", ErrBodyAndChildren)
	}
	l.body = body
	l.hasBody = true
	return nil
}

// Body returns the text body and whether one was set.
func (l *List) Body() (string, bool) {
	return l.body, l.hasBody
}

// Equal reports whether two lists hold the same options, sub-lists and
// body.
func (l *List) Equal(other *List) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.hasBody != other.hasBody || l.body != other.body {
		return false
	}
	if len(l.options) != len(other.options) || len(l.subLists) != len(other.subLists) {
		return false
	}
	for key, value := range l.options {
		if otherValue, ok := other.options[key]; !ok || otherValue != value {
			return false
		}
	}
	for key, sub := range l.subLists {
		if !sub.Equal(other.subLists[key]) {
			return false
		}
	}
	return true
}
