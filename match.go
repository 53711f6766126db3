package wordex

import (
	"fmt"
	"sort"
	"strconv"
)

// Match holds the values extracted from input matching a pattern.
//
// Values are accessible by name and by position. A capture within an optional
// part of the expression which did not participate in the match has value nil.
// List captures hold a []interface{}. Other captures hold a string, or
// whatever their type map converted the string to.
//
// If more than one capture carries the same name, lookup by name returns the
// value of the last one.
type Match struct {
	pattern *Pattern
	input   string
	loc     []int // submatch indices, as returned by regexp
	values  []interface{}
	params  map[string]interface{}
}

func newMatch(p *Pattern, input string, loc []int) (*Match, error) {
	m := &Match{
		pattern: p,
		input:   input,
		loc:     loc,
		values:  make([]interface{}, len(p.captures)),
		params:  make(map[string]interface{}, len(p.captures)),
	}
	s := borrowScratch()
	defer s.release()
	for i, capture := range p.captures {
		from, to := loc[2*i+2], loc[2*i+3]
		if from < 0 {
			m.values[i] = nil
			m.params[capture.Name] = nil
			continue
		}
		text := input[from:to]
		var value interface{}
		if capture.Element != nil {
			elements := capture.Element.FindAllString(text, -1)
			list := make([]interface{}, len(elements))
			for j, element := range elements {
				v, err := capture.TypeMap.Apply(p, s.unwrap(element))
				if err != nil {
					return nil, err
				}
				list[j] = v
			}
			value = list
		} else {
			v, err := capture.TypeMap.Apply(p, s.unwrap(text))
			if err != nil {
				return nil, err
			}
			value = v
		}
		CT().Debugf("%s = %v", capture, value)
		m.values[i] = value
		m.params[capture.Name] = value
	}
	return m, nil
}

// Pattern returns the pattern which produced this match.
func (m *Match) Pattern() *Pattern {
	return m.pattern
}

// Len returns the number of captured values, including nil values.
func (m *Match) Len() int {
	return len(m.values)
}

// Values returns all captured values, in the order of the expression.
func (m *Match) Values() []interface{} {
	v := make([]interface{}, len(m.values))
	copy(v, m.values)
	return v
}

// At returns the value of capture i. It returns nil for i out of range.
func (m *Match) At(i int) interface{} {
	if i < 0 || i >= len(m.values) {
		return nil
	}
	return m.values[i]
}

// Lookup finds a value by the name of its capture. If no capture carries
// that name, but key is a number, the raw text of that submatch is returned
// (0 being the text of the complete match).
func (m *Match) Lookup(key string) (interface{}, bool) {
	if v, ok := m.params[key]; ok {
		return v, true
	}
	if i, err := strconv.Atoi(key); err == nil {
		if g, ok := m.Group(i); ok {
			return g, true
		}
	}
	return nil, false
}

// Get is like Lookup, but returns just the value.
func (m *Match) Get(key string) interface{} {
	v, _ := m.Lookup(key)
	return v
}

// ValuesAt returns the values for a list of keys.
func (m *Match) ValuesAt(keys ...string) []interface{} {
	v := make([]interface{}, len(keys))
	for i, key := range keys {
		v[i] = m.Get(key)
	}
	return v
}

// Names returns the names of all captures, sorted and without duplicates.
func (m *Match) Names() []string {
	names := make([]string, 0, len(m.params))
	for name := range m.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Str returns a string value. ok is false if there is no such value or it is
// not a string.
func (m *Match) Str(key string) (s string, ok bool) {
	s, ok = m.Get(key).(string)
	return
}

// Int returns an integer value, as produced by the Integer type maps.
func (m *Match) Int(key string) (n int64, ok bool) {
	n, ok = m.Get(key).(int64)
	return
}

// Float returns a float value, as produced by the Float type maps.
func (m *Match) Float(key string) (f float64, ok bool) {
	f, ok = m.Get(key).(float64)
	return
}

// List returns the values of a list capture.
func (m *Match) List(key string) (l []interface{}, ok bool) {
	l, ok = m.Get(key).([]interface{})
	return
}

// Strings returns the values of a list capture of strings.
func (m *Match) Strings(key string) ([]string, bool) {
	l, ok := m.List(key)
	if !ok {
		return nil, false
	}
	s := make([]string, len(l))
	for i, v := range l {
		if s[i], ok = v.(string); !ok {
			return nil, false
		}
	}
	return s, true
}

// --- Raw match -------------------------------------------------------------

// Input returns the string the pattern has been matched against.
func (m *Match) Input() string {
	return m.input
}

// Text returns the text of the complete match.
func (m *Match) Text() string {
	return m.input[m.loc[0]:m.loc[1]]
}

// Group returns the raw text of submatch i, with group 0 being the complete
// match. ok is false for groups which did not participate in the match.
func (m *Match) Group(i int) (string, bool) {
	from, to := m.Offset(i)
	if from < 0 {
		return "", false
	}
	return m.input[from:to], true
}

// Offset returns the byte offsets of submatch i within the input, or -1, -1.
func (m *Match) Offset(i int) (int, int) {
	if i < 0 || 2*i+1 >= len(m.loc) {
		return -1, -1
	}
	return m.loc[2*i], m.loc[2*i+1]
}

func (m *Match) String() string {
	return fmt.Sprintf("%v%v", m.pattern, m.values)
}
