package model

// DeployTarget is fixed for the lifetime of the process.
type DeployTarget struct {
	Server string
	URI    string
	File   string
}

const ScriptsPath = "/api/scripts/"

// URL joins the parts by plain concatenation. URI is expected to be URL-safe.
func (t DeployTarget) URL() string {
	return t.Server + ScriptsPath + t.URI
}
