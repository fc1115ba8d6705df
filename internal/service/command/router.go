package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sandevgo/crmchat/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{commands: make(map[string]core.Command)}

	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	c.commands["help"] = &helpCommand{router: c}
	return c
}

// Execute runs input when it is a slash command. The bool reports whether
// input was consumed as a command.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	// Telegram appends the bot name in groups: /status@crm_bot
	name, _, _ := strings.Cut(strings.TrimPrefix(parts[0], "/"), "@")
	args := parts[1:]

	cmd, ok := c.commands[strings.ToLower(name)]
	if !ok {
		return errorReply(fmt.Errorf("unknown command: /%s", name)) +
			"\n💡 Send /help to list the available commands\n", true
	}

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		return errorReply(err), true
	}
	return result, true
}

// ListCommands returns the commands sorted by name.
func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}

type helpCommand struct {
	router *Router
}

func (h *helpCommand) Name() string        { return "help" }
func (h *helpCommand) Description() string { return "List available commands" }

func (h *helpCommand) Execute(context.Context, string, []string) (string, error) {
	items := make([]string, 0, len(h.router.commands))
	for _, cmd := range h.router.ListCommands() {
		items = append(items, fmt.Sprintf("`/%s` %s", cmd.Name(), cmd.Description()))
	}
	return newReply("⚙️", "Commands").
		bullets(items).
		tip("Anything that does not start with / is sent to the assistant").
		String(), nil
}
