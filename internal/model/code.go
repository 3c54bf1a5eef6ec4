package model

// ExtractedCode is the body of a fenced block and its optional language hint.
// Language is empty when the block carried no hint.
type ExtractedCode struct {
	Code     string
	Language string
}

const MimePNG = "image/png"

// Artifact is a prepared response: either a rendered image or raw text.
type Artifact struct {
	Image    []byte
	Mime     string
	Text     string
	FileName string
}

func ImageArtifact(png []byte) Artifact {
	return Artifact{Image: png, Mime: MimePNG, FileName: "code.png"}
}

// TextArtifact is text delivered as a file attachment named fileName.
func TextArtifact(text, fileName string) Artifact {
	return Artifact{Text: text, FileName: fileName}
}

func (a Artifact) IsImage() bool {
	return len(a.Image) > 0
}
