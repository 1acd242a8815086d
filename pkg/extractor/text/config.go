package text

var SupportedExtensions = []string{
	".txt",
	".text",
	".md",
	".markdown",
}

var SupportedMimeTypes = []string{
	"text/plain",
	"text/markdown",
}
