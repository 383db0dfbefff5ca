package bootstrap

import "strings"

// Placeholder tokens recognised by field templates.
const (
	PartInput        = "{input}"
	PartLabel        = "{label}"
	PartError        = "{error}"
	PartHint         = "{hint}"
	PartBeginWrapper = "{beginWrapper}"
	PartEndWrapper   = "{endWrapper}"
	PartBeginLabel   = "{beginLabel}"
	PartLabelTitle   = "{labelTitle}"
	PartEndLabel     = "{endLabel}"
)

// Substitute replaces every {token} of template found in parts with its
// fragment. Keys include the braces. Tokens missing from parts stay literal
// and inserted fragments are never scanned again.
func Substitute(template string, parts map[string]string) string {
	if len(parts) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); {
		open := strings.IndexByte(template[i:], '{')
		if open < 0 {
			b.WriteString(template[i:])
			break
		}
		open += i
		b.WriteString(template[i:open])

		end := strings.IndexByte(template[open+1:], '}')
		if end < 0 {
			b.WriteString(template[open:])
			break
		}
		end += open + 1

		if fragment, ok := parts[template[open:end+1]]; ok {
			b.WriteString(fragment)
			i = end + 1
			continue
		}
		b.WriteByte('{')
		i = open + 1
	}
	return b.String()
}
