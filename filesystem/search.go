package filesystem

// SearchFiles walks the whole tree under root and collects every file named
// target, however deeply nested. Only files are ever matched: a folder
// sharing the target name is traversed into but never reported, callers
// wanting folder lookup resolve a path instead. The walk is a
// breadth-first pass over an explicit queue visiting every node exactly
// once; result order is not significant.
func SearchFiles(root *Folder, target string) []*File {
	var found []*File

	queue := []*Folder{root}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		cur.children.Range(func(_ string, child Node) bool {
			switch c := child.(type) {
			case *Folder:
				queue = append(queue, c)
			case *File:
				if c.name == target {
					found = append(found, c)
				}
			}
			return true
		})
	}

	return found
}
