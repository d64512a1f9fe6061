package domain

type VariableType string

const (
	VariableColor VariableType = "color"
	VariableImage VariableType = "image"
)

// Variable is a named presentation asset referenced from variant keys with the
// literal encodings isColor(<id>) and isImage(<id>).
type Variable struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      VariableType `json:"type"`
	Color     string       `json:"color,omitempty"`
	ImageFile string       `json:"image_file,omitempty"`
}

type VariantRefKind string

const (
	RefColor VariantRefKind = "color"
	RefImage VariantRefKind = "image"
	RefText  VariantRefKind = "text"
)

// VariantRef is the tagged form of a raw variant-key value. Downstream logic
// switches on Kind instead of re-parsing strings.
type VariantRef struct {
	Kind  VariantRefKind `json:"kind"`
	ID    string         `json:"id,omitempty"`
	Value string         `json:"value"`
}
