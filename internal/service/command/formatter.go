package command

import (
	"fmt"
	"strings"
)

// reply assembles the markdown answer of a command: a title line, then
// fields, bullets and a closing tip in the order they are added.
type reply struct {
	sb strings.Builder
}

func newReply(icon, title string) *reply {
	r := &reply{}
	fmt.Fprintf(&r.sb, "%s **%s**\n\n", icon, title)
	return r
}

func (r *reply) field(label string, value any) *reply {
	fmt.Fprintf(&r.sb, "**%s**: %v\n", label, value)
	return r
}

func (r *reply) bullets(items []string) *reply {
	if len(items) == 0 {
		return r
	}
	r.sb.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&r.sb, "- %s\n", item)
	}
	return r
}

func (r *reply) tip(text string) *reply {
	fmt.Fprintf(&r.sb, "\n💡 %s\n", text)
	return r
}

func (r *reply) String() string {
	return strings.TrimRight(r.sb.String(), "\n") + "\n"
}

func errorReply(err error) string {
	return fmt.Sprintf("❌ %s\n", err)
}

func usageReply(usage string) string {
	return fmt.Sprintf("**Usage**: `%s`\n", usage)
}

const timeLayout = "2006-01-02 15:04:05"
