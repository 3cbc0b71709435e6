// ABOUTME: Interactive coven-notes session
// ABOUTME: Re-renders the note count from the projection subscription after every change

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/2389/coven-notes/internal/store"
)

// shell runs an interactive read-eval-print loop until EOF, quit, or ctx ends.
func (a *app) shell(ctx context.Context, in io.Reader) error {
	green := color.New(color.FgGreen)
	cyan := color.New(color.FgCyan)
	red := color.New(color.FgRed)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	updates, _ := a.svc.Subscribe(ctx)

	cyan.Fprintf(a.out, "coven-notes %s (type help, Ctrl+D to exit)\n", version)
	a.printList(a.svc.Notes())

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024) // 1MB max input
	for {
		if ctx.Err() != nil {
			return nil
		}

		green.Fprint(a.out, "> ")
		if !scanner.Scan() {
			// EOF (Ctrl+D) or error
			fmt.Fprintln(a.out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit":
			return nil
		case "help":
			a.printShellHelp()
		case "list", "ls":
			a.printList(a.svc.Notes())
		case "count":
			fmt.Fprintln(a.out, a.svc.Count())
		case "add", "new":
			err = a.shellAdd(ctx, scanner)
		case "edit":
			err = a.shellEdit(ctx, scanner, fields[1:])
		case "delete", "rm":
			err = a.cmdDelete(ctx, fields[1:])
		case "share":
			err = a.cmdShare(ctx, fields[1:])
		default:
			err = fmt.Errorf("unknown command: %s (type help)", fields[0])
		}
		if err != nil {
			red.Fprintf(a.out, "Error: %v\n", err)
		}

		// Refresh publishes before the mutation returns, so any update is already queued
		select {
		case list, ok := <-updates:
			if ok {
				a.printUpdate(list)
			}
		default:
		}
	}
}

func (a *app) printShellHelp() {
	fmt.Fprintln(a.out, "  list                 Show all notes")
	fmt.Fprintln(a.out, "  count                Show the number of notes")
	fmt.Fprintln(a.out, "  add                  Create a note (prompts for title and note)")
	fmt.Fprintln(a.out, "  edit <id>            Edit a note (prompts, Enter keeps the current value)")
	fmt.Fprintln(a.out, "  delete <id>          Delete a note")
	fmt.Fprintln(a.out, "  share <id> [--html]  Print share text")
	fmt.Fprintln(a.out, "  quit                 Leave the shell")
}

func (a *app) printUpdate(list []store.Note) {
	color.New(color.FgHiBlack).Fprintf(a.out, "(%d note(s))\n", len(list))
}

func (a *app) shellAdd(ctx context.Context, scanner *bufio.Scanner) error {
	title := a.prompt(scanner, "Title", "")
	desc := a.prompt(scanner, "Note", "")
	return a.cmdAdd(ctx, []string{title, desc})
}

func (a *app) shellEdit(ctx context.Context, scanner *bufio.Scanner, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: edit <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	current, ok := a.findNote(id)
	if !ok {
		return userError(store.ErrNotFound)
	}

	title := a.prompt(scanner, "Title", current.Title)
	desc := a.prompt(scanner, "Note", current.Description)
	return a.cmdEdit(ctx, []string{args[0], title, desc})
}

func (a *app) findNote(id int64) (store.Note, bool) {
	for _, n := range a.svc.Notes() {
		if n.ID == id {
			return n, true
		}
	}
	return store.Note{}, false
}

// prompt asks a question and returns the trimmed answer, or defaultVal when
// the answer is empty or input has ended.
func (a *app) prompt(scanner *bufio.Scanner, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", question, defaultVal)
	} else {
		fmt.Fprintf(a.out, "%s: ", question)
	}

	if !scanner.Scan() {
		// On EOF or error, return default
		fmt.Fprintln(a.out)
		return defaultVal
	}
	input := strings.TrimSpace(scanner.Text())

	if input == "" {
		return defaultVal
	}
	return input
}
