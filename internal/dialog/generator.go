package dialog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// customExtension finds the output extension in XSLT generator commands such
// as `xsltproc -o "%O" "/usr/share/bom2csv.csv.xsl" "%I"`
var customExtension = regexp.MustCompile(`.*\.([[:alnum:]]{3,4})\.xslt?".*`)

// CommandTemplateFor returns the generator command template for a script or
// executable picked in the file browser. Extensions are matched case
// sensitively.
func CommandTemplateFor(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")

	switch {
	case ext == "xsl":
		return fmt.Sprintf(`xsltproc -o "%%O" "%s" "%%I"`, path)
	case ext == "exe" || ext == "":
		// A file without extension is taken to be a binary
		return fmt.Sprintf(`"%s" > "%%O" < "%%I"`, path)
	case ext == "py":
		return fmt.Sprintf(`python "%s" "%%I" "%%O"`, path)
	default:
		return fmt.Sprintf(`"%s"`, path)
	}
}

// ValidateGenerator checks a new generator definition. The command is
// checked first.
func ValidateGenerator(title, command string) error {
	if strings.TrimSpace(command) == "" {
		return ErrMissingCommand
	}
	if strings.TrimSpace(title) == "" {
		return ErrMissingTitle
	}
	return nil
}

// CustomExtension returns the output file extension of a generator: the one
// named in an XSLT stylesheet file name, else one derived from the title
func CustomExtension(command, title string) string {
	if m := customExtension.FindStringSubmatch(command); m != nil {
		return m[1]
	}

	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
