package content

// FrontMatter is the metadata header of a content file.
// Missing keys decode to zero values.
type FrontMatter struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Date        string   `yaml:"date"` // Sortable lexical form, e.g. 2025-06-01
	Tags        []string `yaml:"tags"`
	Thumbnail   string   `yaml:"thumbnail"`
	GitHub      string   `yaml:"github"`
	Demo        string   `yaml:"demo"`
	Featured    bool     `yaml:"featured"`
}

// Entry is a single content file as read from the store.
type Entry struct {
	Slug string      // Filename without extension; unique within the store
	Meta FrontMatter // Parsed front matter
	Body []byte      // Raw markdown following the front matter
}

func (fm FrontMatter) normalize() FrontMatter {
	if fm.Tags == nil {
		fm.Tags = []string{}
	}
	return fm
}
