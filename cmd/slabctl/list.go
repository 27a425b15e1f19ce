package main

import (
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabkit/internal/logger"
	"github.com/joshuapare/slabkit/slab/linked"
)

type listOptions struct {
	remove []string
	front  []string
}

type listReport struct {
	Forward  []string `json:"forward"`
	Backward []string `json:"backward"`
	Len      int      `json:"len"`
	Blocks   int      `json:"blocks"`
}

func newListCmd(g *globals) *cobra.Command {
	o := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list <item>...",
		Short: "Build a pool-backed doubly linked list",
		Long: `The list command appends every argument to a doubly linked list whose
nodes live in a slab pool, optionally removes or moves items, and prints the
list walked in both directions.

Example:
  slabctl list a b c d
  slabctl list a b c d --remove b --front d`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := runList(o, args)
			if err != nil {
				return err
			}
			if g.jsonOut {
				return printJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			g.printf(out, "forward:  %s\n", strings.Join(report.Forward, " <-> "))
			g.printf(out, "backward: %s\n", strings.Join(report.Backward, " <-> "))
			g.printf(out, "len %d in %d block(s)\n", report.Len, report.Blocks)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&o.remove, "remove", nil, "Items to remove (first occurrence)")
	cmd.Flags().StringSliceVar(&o.front, "front", nil, "Items to move to the front (first occurrence)")
	return cmd
}

func runList(o *listOptions, items []string) (*listReport, error) {
	l, err := linked.New[string](&linked.Options{BlockCapacity: 16})
	if err != nil {
		return nil, err
	}
	defer l.Close()

	elems := make(map[string][]linked.Elem[string])
	for _, item := range items {
		elems[item] = append(elems[item], l.PushBack(item))
	}

	take := func(item string) (linked.Elem[string], bool) {
		es := elems[item]
		if len(es) == 0 {
			return linked.Elem[string]{}, false
		}
		elems[item] = es[1:]
		return es[0], true
	}

	for _, item := range o.remove {
		e, ok := take(item)
		if !ok {
			logger.Warn("list: nothing to remove", "item", item)
			continue
		}
		l.Remove(e)
	}
	for _, item := range o.front {
		es := elems[item]
		if len(es) == 0 {
			logger.Warn("list: nothing to move", "item", item)
			continue
		}
		l.MoveToFront(es[0])
	}

	return &listReport{
		Forward:  l.Values(),
		Backward: slices.Collect(l.Backward()),
		Len:      l.Len(),
		Blocks:   l.Stats().Blocks,
	}, nil
}
