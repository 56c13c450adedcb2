package report

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

// The pterm styles used to display the different kinds of messages.
var (
	errorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	warningStyle = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	fatalStyle   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	infoStyle    = pterm.NewStyle(pterm.FgLightGreen, pterm.Bold)
)

// displayICE displays an internal compiler error message.
func displayICE(message string) {
	fatalStyle.Print("internal compiler error:")
	fmt.Printf(" %s\n", message)
	fmt.Print("This error was not supposed to happen: please open an issue on GitHub\n\n")
}

// displayFatal displays a fatal error message.
func displayFatal(message string) {
	fatalStyle.Print("fatal error:")
	fmt.Printf(" %s\n\n", message)
}

// DisplayInfoMessage displays a labeled informational message.
func DisplayInfoMessage(label, message string) {
	infoStyle.Print(label + ":")
	fmt.Printf(" %s\n", message)
}

// displayCompileMessage displays a compilation error or warning.
func displayCompileMessage(diag *Diagnostic) {
	label := "error"
	style := errorStyle
	if !diag.IsError {
		label = "warning"
		style = warningStyle
	}

	if diag.Span == nil {
		fmt.Printf("%s: ", diag.ReprPath)
		style.Print(label)
		fmt.Printf(": %s\n\n", diag.Message)
	} else {
		fmt.Printf("%s:%d:%d: ", diag.ReprPath, diag.Span.StartLine+1, diag.Span.StartCol+1)
		style.Print(label)
		fmt.Printf(": %s\n\n", diag.Message)
		displaySourceText(diag.AbsPath, diag.Span)
	}
}

// displayStdError displays a standard Go error.
func displayStdError(reprPath string, err error) {
	fmt.Printf("%s: ", reprPath)
	errorStyle.Print("error")
	fmt.Printf(": %s\n\n", err)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span.
func displaySourceText(absPath string, span *TextSpan) {
	// Open the file so we can read the desired source text.
	file, err := os.Open(absPath)
	if err != nil {
		return
	}
	defer file.Close()

	// Collect all the source lines containing the given source text.
	var lines []string
	sc := bufio.NewScanner(file)
	for ln := 0; sc.Scan(); ln++ {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	if err := sc.Err(); err != nil || len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Calculate the maximum line number length.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))

	// Generate the format string for line numbers.
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		// Print the line number and separator bar.
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)

		// Print the source text with the leading indent trimmed off.
		fmt.Println(line[minIndent:])

		// Print the prefix of the line used for carret underlining.
		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// Calculate the number of spaces before carret underlining begins. For
		// any line which is not the starting line, this is always zero since
		// the underlining is always continuing from the previous line.
		var carretPrefixCount int
		if i == 0 {
			carretPrefixCount = span.StartCol - minIndent
		}

		// Calculate the number of characters at the end of the source line that
		// should not be underlined.  This is only ever non-zero on the last
		// line: underlining spans until the end of all other lines.
		var carretSuffixCount int
		if i == len(lines)-1 {
			carretSuffixCount = len(line) - span.EndCol
		}

		carretCount := len(line) - carretSuffixCount - carretPrefixCount - minIndent
		if carretCount < 1 {
			carretCount = 1
		}

		fmt.Print(strings.Repeat(" ", carretPrefixCount))
		errorStyle.Println(strings.Repeat("^", carretCount))
	}

	fmt.Println()
}
