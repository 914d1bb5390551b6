package model

// Cluster is a community-detection result. It is recomputed on every read and
// its ID and Color are only stable for a fixed seed and input order.
type Cluster struct {
	ID       string `json:"id"`
	Color    string `json:"color"`
	Surnames []Node `json:"surnames"`
	Persons  []Node `json:"persons"`
}

// Size counts surname and person members.
func (c Cluster) Size() int {
	return len(c.Surnames) + len(c.Persons)
}
