package domain

import (
	"sort"
)

// AccountNode is an account with its children, ordered by code.
type AccountNode struct {
	Account
	Children []*AccountNode `json:"children"`
}

// BuildChartTree assembles a forest rooted at parentless accounts. Accounts
// whose parent is missing are treated as roots. The second return value lists
// the ids of accounts that cannot be reached from any root, which only
// happens when parent links form a cycle.
func BuildChartTree(accounts []Account) ([]*AccountNode, []string) {
	nodes := make(map[string]*AccountNode, len(accounts))
	for _, a := range accounts {
		nodes[a.AccountID] = &AccountNode{Account: a, Children: []*AccountNode{}}
	}

	var roots []*AccountNode
	for _, a := range accounts {
		node := nodes[a.AccountID]
		parent, ok := nodes[a.ParentAccountID]
		if !a.HasParent() || !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	reached := make(map[string]bool, len(nodes))
	var walk func(n *AccountNode)
	walk = func(n *AccountNode) {
		if reached[n.AccountID] {
			return
		}
		reached[n.AccountID] = true
		sortByCode(n.Children)
		for _, c := range n.Children {
			walk(c)
		}
	}
	sortByCode(roots)
	for _, r := range roots {
		walk(r)
	}

	var orphaned []string
	for _, a := range accounts {
		if !reached[a.AccountID] {
			orphaned = append(orphaned, a.AccountID)
		}
	}
	sort.Strings(orphaned)
	if roots == nil {
		roots = []*AccountNode{}
	}
	return roots, orphaned
}

func sortByCode(nodes []*AccountNode) {
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Code < nodes[j].Code })
}
