package hierarchy

import (
	"fmt"
	"io"
	"strings"
)

// Render writes rows as an indented tree with connector lines
func Render(w io.Writer, rows []Row) error {
	// open[d] is true while depth d still has siblings below
	open := make(map[int]bool)

	for _, row := range rows {
		var sb strings.Builder
		for d := 1; d < row.Depth; d++ {
			if open[d] {
				sb.WriteString("│ ")
			} else {
				sb.WriteString("  ")
			}
		}
		if row.IsLast {
			sb.WriteString("└ ")
		} else {
			sb.WriteString("├ ")
		}
		open[row.Depth] = !row.IsLast

		sb.WriteString(icon(row))
		sb.WriteString(row.Node.Name)
		sb.WriteString(suffix(row.Node))

		if _, err := fmt.Fprintln(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func icon(row Row) string {
	switch {
	case !row.Node.Expandable():
		return "• "
	case row.Expanded:
		return "▼ "
	}
	return "▶ "
}

func suffix(n *Node) string {
	switch n.Kind {
	case ClipSummary:
		return fmt.Sprintf(" (%d curves)", len(n.Curves))
	case Group:
		return fmt.Sprintf(" [%s %s]", n.Curves[0].Binding.Path, n.Curves[0].Binding.Type)
	case Leaf:
		if n.IsPhantom() {
			return " (missing)"
		}
		if n.Depth == 1 {
			return fmt.Sprintf(" [%s %s] %d keys", n.Binding.Path, n.Binding.Type, n.Curves[0].Len())
		}
		return fmt.Sprintf(" %d keys", n.Curves[0].Len())
	}
	return ""
}
