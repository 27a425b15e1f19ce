package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/slab/graph"
)

type graphOptions struct {
	from string
	to   string
}

type graphReport struct {
	Vertices int      `json:"vertices"`
	Edges    int      `json:"edges"`
	From     string   `json:"from"`
	To       string   `json:"to"`
	Path     []string `json:"path"`
}

func newGraphCmd(g *globals) *cobra.Command {
	o := &graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph <from:to>...",
		Short: "Find a shortest path in a pool-backed graph",
		Long: `The graph command builds a directed graph from "from:to" edge arguments,
storing vertices in a slab pool, and prints the shortest path between two
vertices.

Example:
  slabctl graph a:b b:c a:c c:d --from a --to d`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runGraph(o, args)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			g.printf(out, "%d vertices, %d edges\n", report.Vertices, report.Edges)
			if report.Path == nil {
				g.printf(out, "no path from %s to %s\n", report.From, report.To)
				return nil
			}
			g.printf(out, "%s\n", strings.Join(report.Path, " -> "))
			return nil
		},
	}
	cmd.Flags().StringVar(&o.from, "from", "", "Source vertex")
	cmd.Flags().StringVar(&o.to, "to", "", "Target vertex")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runGraph(o *graphOptions, edges []string) (*graphReport, error) {
	gr, err := graph.New[string](nil)
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	byName := make(map[string]graph.Vertex[string])
	vertex := func(name string) graph.Vertex[string] {
		if x, ok := byName[name]; ok {
			return x
		}
		x := gr.AddVertex(name)
		byName[name] = x
		return x
	}

	for _, e := range edges {
		from, to, ok := strings.Cut(e, ":")
		if !ok || from == "" || to == "" {
			return nil, fmt.Errorf("invalid edge %q, want from:to", e)
		}
		if err := gr.AddEdge(vertex(from), vertex(to)); err != nil {
			return nil, err
		}
	}

	src, ok := byName[o.from]
	if !ok {
		return nil, fmt.Errorf("unknown vertex %q", o.from)
	}
	dst, ok := byName[o.to]
	if !ok {
		return nil, fmt.Errorf("unknown vertex %q", o.to)
	}

	r := &graphReport{Vertices: gr.Len(), Edges: gr.Edges(), From: o.from, To: o.to}
	path, err := gr.ShortestPath(src, dst)
	switch {
	case errors.Is(err, graph.ErrNoPath):
		return r, nil
	case err != nil:
		return nil, err
	}
	for _, x := range path {
		name, _ := gr.Value(x)
		r.Path = append(r.Path, name)
	}
	return r, nil
}
