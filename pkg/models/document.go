package models

import "time"

// DocumentVersion is the current graph document schema version. Importers
// must refuse documents carrying any other version.
const DocumentVersion = "1.0"

// DocumentMetadata carries the graph-level fields of a document.
type DocumentMetadata struct {
	Name        string    `json:"name"        validate:"required"`
	Description string    `json:"description"`
	Version     string    `json:"version"     validate:"required"`
	CreatedAt   time.Time `json:"created_at"`
}

// GraphDocument is the portable, durable representation of one graph: the
// unit of save/load/export/import. Exporting is a pure function of graph
// state; importing replaces graph contents entirely.
type GraphDocument struct {
	Nodes       []*Node        `json:"nodes"`
	Connections []*Connection  `json:"connections"`
	Metadata    DocumentMetadata `json:"metadata"`
}

// NodeByID returns the node with the given id, or nil.
func (d *GraphDocument) NodeByID(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}

	return nil
}
