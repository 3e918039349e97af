package provider

type Provider = any

type Model struct {
	ID string
}

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Citation is a grounding reference attached to a completion, e.g. a web
// source the backend consulted while answering.
type Citation struct {
	Title string
	URI   string
}
