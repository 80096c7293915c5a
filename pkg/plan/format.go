package plan

import (
	"bufio"
	"io"
	"strings"
)

// FormatPlan renders the plan tree rooted at n, one node per line.
func FormatPlan(n Node) string {
	var sb strings.Builder
	_ = WritePlan(&sb, n)
	return sb.String()
}

type planLine struct {
	node   Node
	indent string
	last   bool
}

// WritePlan writes the tree of n to w depth first, children after their parent.
func WritePlan(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	stack := []planLine{{node: n, last: true}}
	for len(stack) > 0 {
		l := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		branch, next := "├─ ", "│  "
		if l.last {
			branch, next = "└─ ", "   "
		}
		bw.WriteString(l.indent)
		bw.WriteString(branch)
		bw.WriteString(l.node.Explain())
		bw.WriteByte('\n')

		children := l.node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, planLine{node: children[i], indent: l.indent + next, last: i == len(children)-1})
		}
	}
	return bw.Flush()
}
