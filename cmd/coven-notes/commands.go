// ABOUTME: One-shot CLI commands for coven-notes
// ABOUTME: Each command goes through notes.Service and reports failures in user terms

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"github.com/2389/coven-notes/internal/notes"
	"github.com/2389/coven-notes/internal/store"
)

// previewWidth is the number of description runes shown per note in a list.
const previewWidth = 60

func (a *app) run(ctx context.Context, cmd string, args []string, in io.Reader) error {
	switch cmd {
	case "list":
		a.printList(a.svc.Notes())
		return nil
	case "count":
		fmt.Fprintln(a.out, a.svc.Count())
		return nil
	case "add":
		return a.cmdAdd(ctx, args)
	case "edit":
		return a.cmdEdit(ctx, args)
	case "delete", "rm":
		return a.cmdDelete(ctx, args)
	case "share":
		return a.cmdShare(ctx, args)
	case "migrate":
		fmt.Fprintf(a.out, "schema version %d\n", a.version)
		return nil
	case "shell":
		return a.shell(ctx, in)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *app) cmdAdd(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: coven-notes add <title> <note>")
	}

	id, err := a.svc.CreateNote(ctx, args[0], args[1])
	if err != nil && !isStale(err) {
		return userError(err)
	}

	color.New(color.FgGreen).Fprintf(a.out, "Created note #%d\n", id)
	return userError(err)
}

func (a *app) cmdEdit(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errors.New("usage: coven-notes edit <id> <title> <note>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	err = a.svc.EditNote(ctx, id, args[1], args[2])
	if err != nil && !isStale(err) {
		return userError(err)
	}

	color.New(color.FgGreen).Fprintf(a.out, "Updated note #%d\n", id)
	return userError(err)
}

func (a *app) cmdDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: coven-notes delete <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	err = a.svc.DeleteNote(ctx, id)
	if err != nil && !isStale(err) {
		return userError(err)
	}

	color.New(color.FgGreen).Fprintf(a.out, "Deleted note #%d\n", id)
	return userError(err)
}

func (a *app) cmdShare(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("usage: coven-notes share <id> [--html]")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var text string
	if len(args) == 2 {
		if args[1] != "--html" {
			return fmt.Errorf("unknown flag: %s", args[1])
		}
		text, err = a.svc.ShareHTML(ctx, id)
	} else {
		text, err = a.svc.Share(ctx, id)
	}
	if err != nil {
		return userError(err)
	}

	fmt.Fprintln(a.out, text)
	return nil
}

// printList renders the note list with the same header the app shows.
func (a *app) printList(list []store.Note) {
	cyan := color.New(color.FgCyan, color.Bold)
	bold := color.New(color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Fprintf(a.out, "You have %d note(s)\n", len(list))
	for _, n := range list {
		fmt.Fprintln(a.out)
		gray.Fprintf(a.out, "#%d ", n.ID)
		bold.Fprintln(a.out, n.Title)
		fmt.Fprintf(a.out, "   %s\n", preview(n.Description))
	}
}

// preview returns the first line of s, cut to previewWidth runes.
func preview(s string) string {
	line, _, cut := strings.Cut(s, "\n")
	if utf8.RuneCountInString(line) > previewWidth {
		r := []rune(line)
		return string(r[:previewWidth]) + "…"
	}
	if cut {
		return line + " …"
	}
	return line
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

func isStale(err error) bool {
	var rerr *notes.RefreshError
	return errors.As(err, &rerr)
}

// userError maps coordinator errors to messages a person can act on. The
// original error stays wrapped for errors.Is/As.
func userError(err error) error {
	if err == nil {
		return nil
	}

	var verr *store.ValidationError
	var serr *store.StorageError
	var rerr *notes.RefreshError
	switch {
	case errors.As(err, &verr):
		return fmt.Errorf("please enter both a title and a note (%w)", err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("that note no longer exists; run list to see current notes (%w)", err)
	case errors.As(err, &rerr):
		return fmt.Errorf("saved, but the note list could not be reloaded (%w)", err)
	case errors.As(err, &serr):
		return fmt.Errorf("could not save to the notes database, please try again (%w)", err)
	default:
		return err
	}
}
