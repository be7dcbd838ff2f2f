package message

import "sort"

// RepoBranch describes one repository taking part in a commit.
type RepoBranch struct {
	Path    string
	Branch  string
	Changes int
}

// SelectBranch picks the branch to derive a message from when a commit spans
// several repositories. It defaults to the first repository's branch; among
// repositories whose branch carries an issue key, the one with the most
// changes wins. Ties keep the later repository in input order. When several
// repositories are given, those without changes never override the default.
func SelectBranch(repos []RepoBranch, cfg KeyDetection) string {
	if len(repos) == 0 {
		return ""
	}
	selected := repos[0].Branch

	ordered := make([]RepoBranch, len(repos))
	copy(ordered, repos)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Changes < ordered[j].Changes
	})

	multi := len(repos) > 1
	for _, repo := range ordered {
		if repo.Branch == "" || (multi && repo.Changes == 0) {
			continue
		}
		key, err := ExtractIssueKey(repo.Branch, cfg)
		if err != nil || key == "" {
			continue
		}
		selected = repo.Branch
	}
	return selected
}
