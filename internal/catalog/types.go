package catalog

// ResourceType classifies a complementary resource link.
type ResourceType string

const (
	ResourceLink ResourceType = "link"
	ResourceBot  ResourceType = "bot"
	ResourcePDF  ResourceType = "pdf"
)

type QuizQuestion struct {
	Question     string   `yaml:"question" json:"question"`
	Options      []string `yaml:"options" json:"options"`
	CorrectIndex int      `yaml:"correct_index" json:"correct_index"`
	Insight      string   `yaml:"insight,omitempty" json:"insight,omitempty"`
}

// Correct reports whether the option at idx is the right answer.
func (q QuizQuestion) Correct(idx int) bool {
	return idx == q.CorrectIndex
}

type Resource struct {
	Title string       `yaml:"title" json:"title"`
	URL   string       `yaml:"url" json:"url"`
	Type  ResourceType `yaml:"type" json:"type"`
}

// Pedagogical holds the instructional framing shown next to a webinar.
type Pedagogical struct {
	Purpose       string         `yaml:"purpose" json:"purpose"`
	AdultLearning string         `yaml:"adult_learning" json:"adult_learning"`
	KeyPoints     []string       `yaml:"key_points" json:"key_points"`
	Quiz          []QuizQuestion `yaml:"quiz" json:"quiz"`
	Resources     []Resource     `yaml:"resources,omitempty" json:"resources,omitempty"`
	Infographic   string         `yaml:"infographic,omitempty" json:"infographic,omitempty"`
	Presentation  string         `yaml:"presentation,omitempty" json:"presentation,omitempty"`
	Content       string         `yaml:"content,omitempty" json:"content,omitempty"`
}

type Series struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Order int    `yaml:"order" json:"order"`
}

type Video struct {
	ID          string      `yaml:"id" json:"id"`
	Title       string      `yaml:"title" json:"title"`
	Description string      `yaml:"description" json:"description"`
	Duration    string      `yaml:"duration" json:"duration"`
	Thumbnail   string      `yaml:"thumbnail" json:"thumbnail"`
	Category    string      `yaml:"category" json:"category"`
	Instructor  string      `yaml:"instructor" json:"instructor"`
	Tags        []string    `yaml:"tags" json:"tags"`
	Date        string      `yaml:"date" json:"date"`
	URL         string      `yaml:"url" json:"url"`
	Pedagogical Pedagogical `yaml:"pedagogical" json:"pedagogical"`
	Series      *Series     `yaml:"series,omitempty" json:"series,omitempty"`
}

type Category struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type Post struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	ReadTime string `yaml:"read_time" json:"read_time"`
	Image    string `yaml:"image" json:"image"`
	Category string `yaml:"category" json:"category"`
	Content  string `yaml:"content,omitempty" json:"content,omitempty"`
}

// Agent is an entry of the Nemi agents directory.
type Agent struct {
	ID          string `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
	URL         string `yaml:"url" json:"url"`
}

// Tool is an entry of the EduTools catalog.
type Tool struct {
	ID      string   `yaml:"id" json:"id"`
	Title   string   `yaml:"title" json:"title"`
	Summary string   `yaml:"summary" json:"summary"`
	Logo    string   `yaml:"logo" json:"logo"`
	URL     string   `yaml:"url" json:"url"`
	Tags    []string `yaml:"tags" json:"tags"`
}

// StudioTool is a Nemi Studio generator: a prompt template with named fields.
type StudioTool struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Template    string   `yaml:"template" json:"template"`
	Fields      []string `yaml:"fields" json:"fields"`
}

type document struct {
	Categories  []Category   `yaml:"categories"`
	Videos      []Video      `yaml:"videos"`
	Posts       []Post       `yaml:"posts"`
	Agents      []Agent      `yaml:"agents"`
	Tools       []Tool       `yaml:"tools"`
	StudioTools []StudioTool `yaml:"studio_tools"`
}
