package graph

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/rankwidth/pkg/errors"
)

// ParseUndirected reads an undirected DIMACS graph from r.
func ParseUndirected(r io.Reader) (*Matrix, error) {
	var m *Matrix
	err := parseDimacs(r, "e", func(n int) (labels, func(a, b int)) {
		m = NewMatrix(n)
		return m.labels, m.AddEdge
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ParseDirected reads a directed DIMACS graph from r.
func ParseDirected(r io.Reader) (*Directed, error) {
	var d *Directed
	err := parseDimacs(r, "a", func(n int) (labels, func(a, b int)) {
		d = NewDirected(n)
		return d.labels, d.AddArc
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ReadUndirectedFile opens path and parses it with [ParseUndirected].
func ReadUndirectedFile(path string) (*Matrix, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseUndirected(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return m, nil
}

// ReadDirectedFile opens path and parses it with [ParseDirected].
func ReadDirectedFile(path string) (*Directed, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := ParseDirected(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", path)
	}
	return d, nil
}

func openInput(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	return f, nil
}

// parseDimacs drives the line format shared by both graph kinds. The
// create callback is invoked once with the vertex count from the header
// and returns the label table and the edge inserter.
func parseDimacs(r io.Reader, cmd string, create func(n int) (labels, func(a, b int))) error {
	var (
		lbl       labels
		add       func(a, b int)
		ids       = make(map[string]int)
		remaining int
		gotHeader bool
		lineNo    int
	)

	resolve := func(tok string) (int, error) {
		if id, ok := ids[tok]; ok {
			return id, nil
		}
		if len(ids) >= len(lbl) {
			return 0, errors.New(errors.ErrCodeInvalidInput, "line %d: more than %d distinct vertices", lineNo, len(lbl))
		}
		id := len(ids)
		ids[tok] = id
		lbl[id] = tok
		return id, nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		lineNo++
		parts := strings.Fields(sc.Text())
		if len(parts) == 0 {
			continue
		}
		switch parts[0] {
		case "c", "x", "n":
			continue
		}

		if !gotHeader {
			if parts[0] != "p" || len(parts) < 4 {
				return errors.New(errors.ErrCodeInvalidInput, "line %d: expected 'p' header", lineNo)
			}
			n, err := strconv.Atoi(parts[2])
			if err != nil || n < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "line %d: invalid vertex count %q", lineNo, parts[2])
			}
			m, err := strconv.Atoi(parts[3])
			if err != nil || m < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "line %d: invalid edge count %q", lineNo, parts[3])
			}
			lbl, add = create(n)
			remaining = m
			gotHeader = true
			continue
		}

		if remaining <= 0 {
			return errors.New(errors.ErrCodeInvalidInput, "line %d: more edges than declared in header", lineNo)
		}

		i := 0
		if len(parts) >= 3 {
			if parts[0] != cmd {
				return errors.New(errors.ErrCodeInvalidInput, "line %d: expected '%s' line", lineNo, cmd)
			}
			i = 1
		}
		if len(parts) < i+2 {
			return errors.New(errors.ErrCodeInvalidInput, "line %d: edge needs two endpoints", lineNo)
		}

		a, err := resolve(parts[i])
		if err != nil {
			return err
		}
		b, err := resolve(parts[i+1])
		if err != nil {
			return err
		}
		add(a, b)
		remaining--
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "read")
	}

	if !gotHeader {
		return errors.New(errors.ErrCodeInvalidInput, "missing 'p' header")
	}
	if remaining != 0 {
		return errors.New(errors.ErrCodeInvalidInput, "header declares %d more edges than present", remaining)
	}
	for v := len(ids); v < len(lbl); v++ {
		lbl[v] = "unk_" + strconv.Itoa(v)
	}
	return nil
}
