package pdf

var SupportedExtensions = []string{
	".pdf",
}

var SupportedMimeTypes = []string{
	"application/pdf",
}
