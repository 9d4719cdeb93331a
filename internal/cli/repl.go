// Package cli implements the interactive query REPL used for testing and
// debugging a built index, mirroring the codebase's own input-handler
// pattern.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/geophrase/pkg/glue"
)

// InputHandler drives the query REPL against an opened Instance. Lines
// are of the form "<mode> word word word", where mode selects one of five
// query shapes (every shape except fuzzy_match_multi); mode defaults to
// fuzzy_match_windows if omitted.
type InputHandler struct {
	instance     *glue.Instance
	maxWordD     int
	maxTotalD    int
	requestCount int
}

// NewInputHandler creates a REPL handler bound to instance.
func NewInputHandler(instance *glue.Instance, maxWordD, maxTotalD int) *InputHandler {
	return &InputHandler{instance: instance, maxWordD: maxWordD, maxTotalD: maxTotalD}
}

// Start begins the read-eval-print loop. It returns on stdin EOF or
// read error.
func (h *InputHandler) Start() error {
	log.Print("geophrase query REPL")
	log.Print("modes: contains | contains_prefix | fuzzy | fuzzy_prefix | windows (default)")
	log.Print("type a mode followed by words, e.g.: fuzzy 100 man street")
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Fprint(os.Stderr, "> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		h.handleLine(line)
	}
}

func (h *InputHandler) handleLine(line string) {
	h.requestCount++
	fields := strings.Fields(line)
	mode := "windows"
	words := fields
	if len(fields) > 0 {
		switch fields[0] {
		case "contains", "contains_prefix", "fuzzy", "fuzzy_prefix", "windows":
			mode = fields[0]
			words = fields[1:]
		}
	}
	if len(words) == 0 {
		log.Warn("no words given")
		return
	}

	switch mode {
	case "contains":
		ok, err := h.instance.Contains(words)
		h.report(err, func() { log.Printf("contains(%s) = %v", quoted(words), ok) })
	case "contains_prefix":
		ok, err := h.instance.ContainsPrefix(words)
		h.report(err, func() { log.Printf("contains_prefix(%s) = %v", quoted(words), ok) })
	case "fuzzy":
		matches, err := h.instance.FuzzyMatch(words, h.maxWordD, h.maxTotalD)
		h.report(err, func() { h.printMatches(matches) })
	case "fuzzy_prefix":
		matches, err := h.instance.FuzzyMatchPrefix(words, h.maxWordD, h.maxTotalD)
		h.report(err, func() { h.printMatches(matches) })
	case "windows":
		matches, err := h.instance.FuzzyMatchWindows(words, h.maxWordD, h.maxTotalD, false)
		h.report(err, func() { h.printWindowMatches(matches) })
	}
}

func (h *InputHandler) report(err error, ok func()) {
	if err != nil {
		log.Errorf("query error: %v", err)
		return
	}
	ok()
}

func (h *InputHandler) printMatches(matches []glue.Match) {
	if len(matches) == 0 {
		log.Warn("no matches")
		return
	}
	log.Printf("found %d match(es):", len(matches))
	for i, m := range matches {
		log.Printf("%2d. %-40s (distance: %d)", i+1, strings.Join(m.Words, " "), m.Distance)
	}
}

func (h *InputHandler) printWindowMatches(matches []glue.WindowMatch) {
	if len(matches) == 0 {
		log.Warn("no window matches")
		return
	}
	log.Printf("found %d window match(es):", len(matches))
	for i, m := range matches {
		log.Printf("%2d. [%d,%d) %-40s (distance: %d, prefix: %v)",
			i+1, m.Start, m.End, strings.Join(m.Words, " "), m.Distance, m.EndsInPrefixHit)
	}
}

func quoted(words []string) string {
	return strconv.Quote(strings.Join(words, " "))
}
