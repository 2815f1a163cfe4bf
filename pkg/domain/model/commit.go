package model

// CommitRef identifies the head commit of a pull request at the moment a
// trigger was accepted. All later stages act on this fixed commit even when
// the branch moves on.
type CommitRef struct {
	Owner  string `json:"owner" firestore:"owner"`
	Repo   string `json:"repo" firestore:"repo"`
	Number int    `json:"number" firestore:"number"`
	Branch string `json:"branch" firestore:"branch"`
	SHA    string `json:"sha" firestore:"sha"`
}

// RepoSlug returns the owner/name form of the repository.
func (c *CommitRef) RepoSlug() string {
	return c.Owner + "/" + c.Repo
}

// CloneURL returns the HTTPS clone URL of the repository.
func (c *CommitRef) CloneURL() string {
	return "https://github.com/" + c.Owner + "/" + c.Repo + ".git"
}

// ShortSHA returns the abbreviated commit hash for log output.
func (c *CommitRef) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// CommitStatus is a commit status to publish on a commit. State carries the
// workflow's own vocabulary; the GitHub client maps values the status API
// does not know.
type CommitStatus struct {
	State       RunStatus
	Context     string
	Description string
	TargetURL   string
}
