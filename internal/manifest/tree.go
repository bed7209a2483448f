package manifest

// Build infers the navigation forest for entries.
func Build(entries []Entry) *Manifest {
	files := NewIndex(entries).Build("")
	if files == nil {
		files = []Node{}
	}
	return &Manifest{Files: files}
}

// Build returns the nodes for dir in sibling order. A numbered document
// receives, as children, the nodes of every direct subdirectory of dir whose
// name starts with its number followed by "_", concatenated in lexicographic
// order of the subdirectory path.
func (idx *Index) Build(dir string) []Node {
	entries := idx.Entries(dir)
	if len(entries) == 0 {
		return nil
	}
	sortEntries(entries)

	nodes := make([]Node, 0, len(entries))
	for _, e := range entries {
		node := Node{
			Path:  e.RenderedPath,
			Title: e.Title,
			Type:  TypeFile,
		}
		if number, ok := ExtractNumber(e.OriginalName); ok {
			for _, child := range idx.childDirs(dir, number) {
				node.Children = append(node.Children, idx.Build(child)...)
			}
		}
		nodes = append(nodes, node)
	}
	return nodes
}
