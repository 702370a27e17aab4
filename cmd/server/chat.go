package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sujalbistaa/zevina/internal/chatbot"
)

// runChat is a line-based chat window: "/new" starts a new chat, "/quit"
// or end of input leaves.
func runChat(ctx context.Context, in io.Reader, out io.Writer, delay time.Duration) error {
	if ctx == nil {
		ctx = context.Background()
	}
	replies := make(chan chatbot.Message, 1)
	conv := chatbot.NewConversation(ctx,
		chatbot.WithDelay(delay),
		chatbot.WithSink(func(m chatbot.Message) { replies <- m }),
	)
	defer conv.Close()

	printBot := func(text string) { fmt.Fprintf(out, "Zevi 🌿: %s\n", text) }
	printBot(conv.Messages()[0].Text)
	fmt.Fprintf(out, "Try: %s\n", strings.Join(chatbot.Suggestions(), " | "))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "/quit":
			return nil
		case "/new":
			printBot(conv.Reset()[0].Text)
			continue
		}

		if _, err := conv.Send(line); err != nil {
			return err
		}
		select {
		case m := <-replies:
			printBot(m.Text)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
