// Package depgraph detects relationships between open pull requests and
// groups them into dependency chains with a ready/blocked merge-order status.
package depgraph

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/triage/pkg/types"
)

// Reason identifies how a dependency between two PRs was detected.
type Reason string

// Detection reasons.
const (
	ReasonBranchChain Reason = "branch-chain"
	ReasonMention     Reason = "mention"
	ReasonFileOverlap Reason = "file-overlap"
)

// Dependency is a directed edge: FromPR depends on ToPR.
type Dependency struct {
	Reason  Reason
	Details string
	FromPR  int
	ToPR    int
}

// ChainStatus is the merge-order status of a chain.
type ChainStatus string

// Chain statuses.
const (
	ChainReady   ChainStatus = "ready"
	ChainBlocked ChainStatus = "blocked"
)

// Chain is one connected component of the dependency graph.
type Chain struct {
	Status  ChainStatus
	Blocker string // empty when ready
	PRIDs   []int  // ascending
	ID      int
}

// Graph is the full dependency view over one PR snapshot.
type Graph struct {
	Dependencies []Dependency
	Chains       []Chain
	BlockedPRIDs []int // FromPRs whose dependency target is unapproved, ascending
}

// defaultMentionPattern captures a referenced PR id from title or
// description text.
var defaultMentionPattern = regexp.MustCompile(`(?i)(?:depends\s+on|blocked\s+by|requires|after)\s*[#!]?(\d+)`)

// Options selects which detectors run and how they are tuned.
type Options struct {
	MentionPattern *regexp.Regexp // first capture group is the referenced PR id
	MinSharedFiles int
	BranchChains   bool
	Mentions       bool
	FileOverlap    bool
}

// DefaultOptions enables all three detectors with the stock mention pattern
// and a three-file overlap threshold.
func DefaultOptions() Options {
	return Options{
		BranchChains:   true,
		Mentions:       true,
		MentionPattern: defaultMentionPattern,
		FileOverlap:    true,
		MinSharedFiles: 3,
	}
}

// Build runs the configured detectors over the snapshot and assembles the
// chain view. The approved set marks PR ids whose dependencies are satisfied.
func Build(prs []types.PullRequest, approved map[int]bool, opts Options) Graph {
	ordered := make([]*types.PullRequest, 0, len(prs))
	for i := range prs {
		ordered = append(ordered, &prs[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var edges []Dependency
	if opts.BranchChains {
		edges = append(edges, branchChainEdges(ordered)...)
	}
	if opts.Mentions {
		edges = append(edges, mentionEdges(ordered, opts.MentionPattern)...)
	}
	if opts.FileOverlap {
		edges = append(edges, fileOverlapEdges(ordered, opts.MinSharedFiles)...)
	}
	edges = dedupe(edges)

	graph := Graph{
		Dependencies: edges,
		Chains:       chains(edges, approved),
		BlockedPRIDs: blockedIDs(edges, approved),
	}
	slog.Debug("Dependency graph built",
		"prs", len(prs), "edges", len(edges), "chains", len(graph.Chains), "blocked", len(graph.BlockedPRIDs))
	return graph
}

// branchChainEdges links PRs whose target branch is another PR's source
// branch: the targeting PR depends on the one producing the branch.
func branchChainEdges(prs []*types.PullRequest) []Dependency {
	bySource := make(map[string][]*types.PullRequest)
	for _, pr := range prs {
		if pr.SourceBranch != "" {
			bySource[pr.SourceBranch] = append(bySource[pr.SourceBranch], pr)
		}
	}
	var edges []Dependency
	for _, pr := range prs {
		if pr.TargetBranch == "" {
			continue
		}
		for _, base := range bySource[pr.TargetBranch] {
			if base.ID == pr.ID {
				continue
			}
			edges = append(edges, Dependency{
				FromPR:  pr.ID,
				ToPR:    base.ID,
				Reason:  ReasonBranchChain,
				Details: fmt.Sprintf("targets branch %q from #%d", pr.TargetBranch, base.ID),
			})
		}
	}
	return edges
}

// mentionEdges scans title and description text for referenced PR ids.
// References to unknown or self ids are dropped.
func mentionEdges(prs []*types.PullRequest, pattern *regexp.Regexp) []Dependency {
	if pattern == nil {
		pattern = defaultMentionPattern
	}
	known := make(map[int]bool, len(prs))
	for _, pr := range prs {
		known[pr.ID] = true
	}
	var edges []Dependency
	for _, pr := range prs {
		text := pr.Title + "\n" + pr.Description
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			if len(match) < 2 {
				continue
			}
			ref, err := strconv.Atoi(match[1])
			if err != nil || ref == pr.ID || !known[ref] {
				continue
			}
			edges = append(edges, Dependency{
				FromPR:  pr.ID,
				ToPR:    ref,
				Reason:  ReasonMention,
				Details: fmt.Sprintf("mentions #%d", ref),
			})
		}
	}
	return edges
}

// fileOverlapEdges links PR pairs whose changed-file sets intersect in at
// least minShared paths. The edge is recorded once, lower id first.
func fileOverlapEdges(prs []*types.PullRequest, minShared int) []Dependency {
	if minShared < 1 {
		minShared = 1
	}
	var edges []Dependency
	for i := 0; i < len(prs); i++ {
		if len(prs[i].ChangedFiles) == 0 {
			continue
		}
		files := make(map[string]bool, len(prs[i].ChangedFiles))
		for _, f := range prs[i].ChangedFiles {
			files[f] = true
		}
		for j := i + 1; j < len(prs); j++ {
			if len(prs[j].ChangedFiles) == 0 {
				continue
			}
			var shared []string
			for _, f := range prs[j].ChangedFiles {
				if files[f] {
					shared = append(shared, f)
				}
			}
			if len(shared) < minShared {
				continue
			}
			sort.Strings(shared)
			sample := shared
			if len(sample) > 3 {
				sample = sample[:3]
			}
			edges = append(edges, Dependency{
				FromPR:  prs[i].ID,
				ToPR:    prs[j].ID,
				Reason:  ReasonFileOverlap,
				Details: fmt.Sprintf("%d shared files: %s", len(shared), strings.Join(sample, ", ")),
			})
		}
	}
	return edges
}

// dedupe keeps the first edge per (from, to, reason) triple.
func dedupe(edges []Dependency) []Dependency {
	type key struct {
		reason Reason
		from   int
		to     int
	}
	seen := make(map[key]bool, len(edges))
	deduped := make([]Dependency, 0, len(edges))
	for _, e := range edges {
		k := key{from: e.FromPR, to: e.ToPR, reason: e.Reason}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, e)
	}
	return deduped
}

// chains finds connected components over the undirected adjacency view and
// derives each component's ready/blocked status.
func chains(edges []Dependency, approved map[int]bool) []Chain {
	adjacency := make(map[int][]int)
	for _, e := range edges {
		adjacency[e.FromPR] = append(adjacency[e.FromPR], e.ToPR)
		adjacency[e.ToPR] = append(adjacency[e.ToPR], e.FromPR)
	}
	nodes := make([]int, 0, len(adjacency))
	for id := range adjacency {
		nodes = append(nodes, id)
	}
	sort.Ints(nodes)

	visited := make(map[int]bool, len(nodes))
	var result []Chain
	for _, start := range nodes {
		if visited[start] {
			continue
		}
		members := bfs(start, adjacency, visited)
		chain := Chain{ID: len(result) + 1, PRIDs: members, Status: ChainReady}
		if blockers := unapprovedTargets(edges, members, approved); len(blockers) > 0 {
			chain.Status = ChainBlocked
			chain.Blocker = describeBlockers(blockers)
		}
		result = append(result, chain)
	}
	return result
}

// bfs collects the component containing start, returned ascending.
func bfs(start int, adjacency map[int][]int, visited map[int]bool) []int {
	queue := []int{start}
	visited[start] = true
	var members []int
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		members = append(members, node)
		neighbors := make([]int, len(adjacency[node]))
		copy(neighbors, adjacency[node])
		sort.Ints(neighbors)
		for _, next := range neighbors {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	sort.Ints(members)
	return members
}

// unapprovedTargets returns the dependency targets inside the component that
// are not yet approved, ascending and deduplicated.
func unapprovedTargets(edges []Dependency, members []int, approved map[int]bool) []int {
	inChain := make(map[int]bool, len(members))
	for _, id := range members {
		inChain[id] = true
	}
	seen := make(map[int]bool)
	var blockers []int
	for _, e := range edges {
		if !inChain[e.FromPR] || !inChain[e.ToPR] {
			continue
		}
		if approved[e.ToPR] || seen[e.ToPR] {
			continue
		}
		seen[e.ToPR] = true
		blockers = append(blockers, e.ToPR)
	}
	sort.Ints(blockers)
	return blockers
}

func describeBlockers(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("#%d", id)
	}
	return "waiting on " + strings.Join(parts, ", ")
}

// blockedIDs collects every FromPR whose dependency target is unapproved,
// independent of chain membership.
func blockedIDs(edges []Dependency, approved map[int]bool) []int {
	seen := make(map[int]bool)
	var blocked []int
	for _, e := range edges {
		if approved[e.ToPR] || seen[e.FromPR] {
			continue
		}
		seen[e.FromPR] = true
		blocked = append(blocked, e.FromPR)
	}
	sort.Ints(blocked)
	return blocked
}
