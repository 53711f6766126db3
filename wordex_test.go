package wordex

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/wordex/typemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileBalanced(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	for _, expr := range []string{
		"", "stop", "go [to :place]", "[please] stop", "a [b [c [d]]] [e]", "[][[]]",
	} {
		_, err := Compile(expr)
		assert.NoError(t, err, "expression %q", expr)
	}
}

func TestCompileUnbalanced(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	for _, expr := range []string{"go [to", "go ]", "[a [b]", "a]", "[[]"} {
		_, err := Compile(expr)
		assert.ErrorIs(t, err, ErrUnbalanced, "expression %q", expr)
	}
}

func TestCompileDeepNesting(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	nested := func(n int) string {
		return strings.Repeat("[x ", n) + ":n@Integer" + strings.Repeat("]", n)
	}
	p, err := Compile(nested(MaxNesting))
	require.NoError(t, err)
	m, err := p.Match("x x")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Nil(t, m.Get("n"))
	_, err = Compile(nested(MaxNesting + 1))
	assert.ErrorIs(t, err, ErrTooDeep)
	_, err = Compile(nested(2 * MaxNesting))
	assert.ErrorIs(t, err, ErrTooDeep)
	assert.False(t, errors.Is(err, ErrUnbalanced))
}

func TestCompileUnknownType(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	_, err := Compile("paint :what@Colour", WithRegistry(typemap.NewRegistry()))
	assert.ErrorIs(t, err, ErrUnknownType)
	_, err = Compile("count@Integer")
	assert.ErrorIs(t, err, ErrMissingSigil)
	assert.Panics(t, func() { MustCompile("go [") })
}

func TestOptionalPlace(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("go [to :place]")
	m, err := p.Match("go")
	require.NoError(t, err)
	require.NotNil(t, m)
	v, ok := m.Lookup("place")
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, []interface{}{nil}, m.Values())
	//
	m, err = p.Match("go to kitchen")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "kitchen", m.Get("place"))
	//
	m, _ = p.Match("go to")
	assert.Nil(t, m)
	m, _ = p.Match("goto kitchen")
	assert.Nil(t, m)
}

func TestIntegerType(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile(":n@Integer")
	m, err := p.Match("42")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, int64(42), m.Get("n"))
	n, ok := m.Int("n")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	//
	m, err = p.Match(`"-7"`)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, int64(-7), m.Get("n"))
	//
	m, err = p.Match("abc")
	assert.NoError(t, err)
	assert.Nil(t, m)
	//
	m, err = p.Match("99999999999999999999")
	assert.NoError(t, err)
	assert.Nil(t, m, "out of range integer should be rejected by validation")
}

func TestFloatTypes(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("move :dx@Float :dy@-Float")
	m, err := p.Match("move 1.5 -2")
	require.NoError(t, err)
	require.NotNil(t, m)
	dx, _ := m.Float("dx")
	dy, _ := m.Float("dy")
	assert.Equal(t, 1.5, dx)
	assert.Equal(t, -2.0, dy)
	assert.False(t, p.MatchString("move 1.5 2"))
}

func TestListSplitting(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("*items")
	m, err := p.Match("apple, banana cherry")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []interface{}{"apple", "banana", "cherry"}, m.Get("items"))
	s, ok := m.Strings("items")
	assert.True(t, ok)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, s)
}

func TestTypedList(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("sum *numbers@Integer")
	m, err := p.Match(`sum 1, 2 "3",'4'`)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(3), int64(4)}, m.Get("numbers"))
	assert.False(t, p.MatchString("sum 1, two"))
}

func TestQuotedListElements(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("invite *people")
	m, err := p.Match(`invite "John Smith", 'Jane Doe' bob`)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []interface{}{"John Smith", "Jane Doe", "bob"}, m.Get("people"))
}

// ipRegistry returns a registry with a type map for IPv4 addresses which
// rejects components > 255 and fails with a defect for 0.0.0.0.
func ipRegistry() *typemap.Registry {
	reg := typemap.NewRegistry()
	reg.MustRegister("IP", `\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}`,
		func(ctx typemap.Context, value string) (interface{}, error) {
			if value == "0.0.0.0" {
				return nil, errors.New("defect")
			}
			parts := strings.Split(value, ".")
			ip := make([]int, len(parts))
			for i, part := range parts {
				n, _ := strconv.Atoi(part)
				if n > 255 {
					return nil, typemap.Reject(value, "component %d out of range", i)
				}
				ip[i] = n
			}
			return ip, nil
		})
	return reg
}

func TestSemanticRejection(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("ping :host@IP", WithRegistry(ipRegistry()))
	m, err := p.Match("ping 10.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, []int{10, 0, 0, 1}, m.Get("host"))
	//
	m, err = p.Match("ping 10.0.0.300")
	assert.NoError(t, err, "validation failure must not surface as error")
	assert.Nil(t, m)
}

func TestDefectPropagates(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("ping *hosts@IP", WithRegistry(ipRegistry()))
	m, err := p.Match("ping 10.0.0.1 0.0.0.0")
	assert.Nil(t, m)
	assert.EqualError(t, err, "defect")
	assert.False(t, p.MatchString("ping 0.0.0.0"))
}

func TestValidatorSeesPattern(t *testing.T) {
	reg := typemap.NewEmptyRegistry()
	var seen string
	reg.MustRegister("Any", `\S+`, func(ctx typemap.Context, value string) (interface{}, error) {
		seen = ctx.Expression()
		return value, nil
	})
	p := MustCompile(":x@Any", WithRegistry(reg))
	require.True(t, p.MatchString("hello"))
	assert.Equal(t, ":x@Any", seen)
}

func TestIdempotence(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	expr := "give :who *items [to :place]"
	p1, p2 := MustCompile(expr), MustCompile(expr)
	assert.True(t, p1.Equal(p2))
	assert.Equal(t, p1.Hash(), p2.Hash())
	assert.Equal(t, p1.Regexp(), p2.Regexp())
	assert.False(t, p1.Equal(MustCompile("give :who")))
	input := "give bob apple, pear to kitchen"
	m1, _ := p1.Match(input)
	m2, _ := p2.Match(input)
	require.NotNil(t, m1)
	require.NotNil(t, m2)
	assert.Equal(t, m1.Values(), m2.Values())
	assert.Equal(t, []interface{}{"bob", []interface{}{"apple", "pear"}, "kitchen"}, m1.Values())
}

func TestAlternativesIgnoreCase(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile(":color{red,blue}")
	m, err := p.Match("RED")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "RED", m.Get("color"))
	assert.False(t, p.MatchString("green"))
	//
	p = MustCompile("paint *colors{red,blue}")
	m, _ = p.Match("paint Red, BLUE red")
	require.NotNil(t, m)
	assert.Equal(t, []interface{}{"Red", "BLUE", "red"}, m.Get("colors"))
}

func TestAlternativesWithType(t *testing.T) {
	p := MustCompile("roll :sides@Integer{6,12,20}")
	m, _ := p.Match("roll 12")
	require.NotNil(t, m)
	assert.Equal(t, int64(12), m.Get("sides"))
	assert.False(t, p.MatchString("roll 7"))
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	p := MustCompile("stop")
	assert.True(t, p.MatchString("stop"))
	assert.True(t, p.MatchString("stop   "))
	assert.False(t, p.MatchString("STOP"))
	assert.False(t, p.MatchString(" stop"))
}

func TestLeadingOptional(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("[please] stop")
	assert.True(t, p.MatchString("stop"))
	assert.True(t, p.MatchString("please stop"))
	assert.False(t, p.MatchString("pleasestop"))
	//
	p = MustCompile("[[very] please] stop :now")
	for _, input := range []string{"stop 1", "please stop 1", "very please stop 1"} {
		assert.True(t, p.MatchString(input), "input %q", input)
	}
	assert.False(t, p.MatchString("very stop 1"))
}

func TestPunctuation(t *testing.T) {
	p := MustCompile("say :what!")
	m, _ := p.Match("say hello!")
	require.NotNil(t, m)
	assert.Equal(t, "hello", m.Get("what"))
	//
	p = MustCompile(`say :what@Integer!`)
	m, _ = p.Match("say 3!")
	require.NotNil(t, m)
	assert.Equal(t, int64(3), m.Get("what"))
	assert.False(t, p.MatchString("say 3"))
}

func TestFreeText(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile("tell :who +message")
	m, _ := p.Match("tell bob  hello there, how are you?  ")
	require.NotNil(t, m)
	assert.Equal(t, "bob", m.Get("who"))
	assert.Equal(t, "hello there, how are you?", m.Get("message"))
	//
	p = MustCompile("note +text [now]")
	m, _ = p.Match("note buy milk now")
	require.NotNil(t, m)
	assert.Equal(t, "buy milk", m.Get("text"))
}

func TestQuotedArgument(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	p := MustCompile(":name")
	cases := map[string]string{
		`"John Smith"`:   `John Smith`,
		`'John Smith'`:   `John Smith`,
		`"say \"hi\""`:   `say "hi"`,
		`'it\'s'`:        `it's`,
		`John\ Smith`:    `John Smith`,
		`"C:\temp"`:      `C:\temp`,
		`back\\slash`:    `back\\slash`,
		`""`:             ``,
		`"mixed\ blank"`: `mixed blank`,
		`plain`:          `plain`,
	}
	for input, expected := range cases {
		m, err := p.Match(input)
		require.NoError(t, err)
		require.NotNil(t, m, "input %s", input)
		assert.Equal(t, expected, m.Get("name"), "input %s", input)
	}
}

func TestDuplicateNames(t *testing.T) {
	p := MustCompile("from :x [to :x]")
	m, _ := p.Match("from a to b")
	require.NotNil(t, m)
	assert.Equal(t, "b", m.Get("x"))
	assert.Equal(t, []interface{}{"a", "b"}, m.Values())
	assert.Equal(t, 2, m.Len())
	//
	m, _ = p.Match("from a")
	require.NotNil(t, m)
	assert.Nil(t, m.Get("x"), "last capture wins, even if absent")
	assert.Equal(t, "a", m.At(0))
	assert.Nil(t, m.At(1))
	assert.Nil(t, m.At(5))
	assert.Equal(t, []string{"x"}, m.Names())
}

func TestRawAccess(t *testing.T) {
	p := MustCompile("go [to :place]")
	m, _ := p.Match("go to kitchen  ")
	require.NotNil(t, m)
	assert.Equal(t, "go to kitchen  ", m.Input())
	assert.Equal(t, "go to kitchen  ", m.Text())
	g, ok := m.Group(1)
	assert.True(t, ok)
	assert.Equal(t, "kitchen", g)
	from, to := m.Offset(1)
	assert.Equal(t, 6, from)
	assert.Equal(t, 13, to)
	assert.Equal(t, "kitchen", m.Get("1"), "numeric keys fall back to raw groups")
	_, ok = m.Lookup("nowhere")
	assert.False(t, ok)
	assert.Equal(t, []interface{}{"kitchen", nil}, m.ValuesAt("place", "nowhere"))
	//
	m, _ = p.Match("go")
	_, ok = m.Group(1)
	assert.False(t, ok)
	from, _ = m.Offset(7)
	assert.Equal(t, -1, from)
}

func TestAnnotationIsIgnored(t *testing.T) {
	p1 := MustCompile("wait :n<seconds>@Integer")
	p2 := MustCompile("wait :n@Integer")
	assert.Equal(t, p2.Regexp(), p1.Regexp())
	assert.Equal(t, "seconds", p1.Captures()[0].Annotation)
	assert.False(t, p1.Equal(p2))
}

func TestRegistryIsResolvedAtCompileTime(t *testing.T) {
	reg := typemap.NewRegistry()
	reg.MustRegister("Word", `[a-z]+`, nil)
	p := MustCompile(":w@Word", WithRegistry(reg))
	reg.MustRegister("Word", `[0-9]+`, nil)
	assert.True(t, p.MatchString("abc"))
	assert.False(t, p.MatchString("123"))
}
