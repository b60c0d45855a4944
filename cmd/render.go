package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/brk3/habit-tracker/pkg/habit"
)

const shortIDLen = 8

func renderProgress(w io.Writer, p habit.Progress) {
	fmt.Fprintf(w, "%d / %d done\n", p.Completed, p.Total)
}

func renderState(w io.Writer, st habit.State) {
	if len(st.Habits) == 0 {
		fmt.Fprintln(w, "No habits yet. Add one to get started!")
		renderProgress(w, st.Progress)
		return
	}
	for i, h := range st.Habits {
		mark := " "
		if h.Done {
			mark = "x"
		}
		fmt.Fprintf(w, "[%s] %d. %s  (%s)\n", mark, i+1, h.Text, shortID(h.ID))
	}
	renderProgress(w, st.Progress)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// resolveID maps what a user typed to a habit id: an exact id, a 1-based
// list position, or a unique id prefix. A number outside the list is tried
// as a prefix too, since a short id can be all digits. Anything else is
// returned as is, which the store treats as an unknown id.
func resolveID(habits []habit.Habit, ref string) string {
	for _, h := range habits {
		if h.ID == ref {
			return ref
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(habits) {
			return habits[n-1].ID
		}
	}
	match := ""
	for _, h := range habits {
		if strings.HasPrefix(h.ID, ref) {
			if match != "" {
				return ref
			}
			match = h.ID
		}
	}
	if match == "" {
		return ref
	}
	return match
}
