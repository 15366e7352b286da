package source

import (
	"os"
	"path/filepath"
)

// FileSet holds the files of one scan pass. Files are never evicted; a new
// pass uses a new set.
type FileSet struct {
	files []*File
}

func NewFileSet() *FileSet { return &FileSet{} }

func (fs *FileSet) Len() int { return len(fs.files) }

// Load reads path in one go, decodes it and adds it to the set.
// No handle is kept open after Load returns.
func (fs *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- путь приходит из обхода дерева
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return fs.add(path, decode(content)), nil
}

// AddVirtual adds in-memory content under name (tests, stdin).
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.add(name, decode(content))
}

func (fs *FileSet) add(path string, content []byte) FileID {
	id := FileID(u32(len(fs.files)))
	fs.files = append(fs.files, &File{
		ID:      id,
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		starts:  lineStarts(content),
	})
	return id
}

// Get returns the file with id, or nil.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return fs.files[id]
}

// Resolve converts both ends of span into positions.
func (fs *FileSet) Resolve(span Span) (start, end Pos) {
	f := fs.Get(span.File)
	if f == nil {
		return Pos{}, Pos{}
	}
	return f.Position(span.Start), f.Position(span.End)
}
