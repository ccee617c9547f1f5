package format

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// WriteEDN writes an EDN rendering of v. Structs go through JSON first so the
// json tags decide field names; object keys become keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case json.Number:
		buf.WriteString(t.String())
	case float64:
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.seq(buf, '[', ']', len(t), level, func(i int) {
			e.value(buf, t[i], level+1)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq(buf, '{', '}', len(keys), level, func(i int) {
			buf.WriteString(keyword(keys[i]))
			buf.WriteByte(' ')
			e.value(buf, t[keys[i]], level+1)
		})
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func (e ednEncoder) seq(buf *bytes.Buffer, open, close byte, n, level int, each func(i int)) {
	buf.WriteByte(open)
	if n == 0 {
		buf.WriteByte(close)
		return
	}
	if e.pretty {
		buf.WriteByte('\n')
	}
	for i := 0; i < n; i++ {
		if e.pretty {
			buf.WriteString(strings.Repeat(" ", (level+1)*e.indent))
		}
		each(i)
		if i != n-1 {
			if e.pretty {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
	}
	if e.pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
	buf.WriteByte(close)
}

// keyword renders an object key as an EDN keyword. Completion keys such as
// "Sunday-3" are valid keywords as-is; anything with spaces is kebab-cased.
func keyword(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	if s == "" {
		return `:_`
	}
	return ":" + s
}
