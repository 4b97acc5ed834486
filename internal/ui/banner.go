package ui

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/salarysim/internal/utils"
)

const bannerText = `
▄▄███▄▄· █████╗ ██╗      █████╗ ██████╗ ██╗   ██╗    ▄▄███▄▄·██╗███╗   ███╗
██╔════╝██╔══██╗██║     ██╔══██╗██╔══██╗╚██╗ ██╔╝    ██╔════╝██║████╗ ████║
███████╗███████║██║     ███████║██████╔╝ ╚████╔╝     ███████╗██║██╔████╔██║
╚════██║██╔══██║██║     ██╔══██║██╔══██╗  ╚██╔╝      ╚════██║██║██║╚██╔╝██║
███████║██║  ██║███████╗██║  ██║██║  ██║   ██║       ███████║██║██║ ╚═╝ ██║
╚═▀▀▀══╝╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝       ╚═▀▀▀══╝╚═╝╚═╝     ╚═╝
 Salary distribution simulator
`

// ColorizeText applies a random colour fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var b strings.Builder
	for i, ch := range chars {
		b.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return b.String()
}

// PrintBanner writes the application banner unless silenced
func PrintBanner(w io.Writer, silence bool) {
	if silence {
		return
	}
	fmt.Fprintln(w, ColorizeText(bannerText))
}

// ColorizeSalary formats an amount and colours it by band
func ColorizeSalary(value float64) string {
	formatted := utils.FormatSalary(value)

	switch {
	case value >= 200000:
		return pterm.Green(formatted)
	case value >= 150000:
		return pterm.LightGreen(formatted)
	case value >= 100000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
