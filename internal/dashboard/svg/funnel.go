package svg

import (
	"fmt"
	"html/template"
	"strings"
)

// Funnel renders a horizontal funnel chart: one bar per stage, bar length
// proportional to the stage count relative to the first segment, with the
// stage name to the left and the caller-supplied label inside or beside the
// bar.
func Funnel(width, height int, segments []FunnelSegment, opts FunnelOpts) (template.HTML, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("svg: segments required")
	}
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	padding := opts.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}

	axisColor := fallback(opts.AxisColor, "#475569")
	trackColor := fallback(opts.TrackColor, "rgba(148,163,184,0.15)")
	labelColor := fallback(opts.LabelColor, "#f8fafc")

	const nameColumn = 86.0
	chartWidth := float64(width) - 2*padding - nameColumn
	chartHeight := float64(height) - 2*padding
	if chartWidth <= 0 || chartHeight <= 0 {
		return "", fmt.Errorf("svg: viewport too small")
	}

	maxCount := segments[0].Count
	for _, seg := range segments[1:] {
		if seg.Count > maxCount {
			maxCount = seg.Count
		}
	}
	if maxCount <= 0 {
		maxCount = 1
	}

	rowHeight := chartHeight / float64(len(segments))
	barHeight := rowHeight * 0.62

	titleID := makeID(opts.Title, "funnel-title")
	descID := makeID(opts.Title, "funnel-desc")

	var b strings.Builder
	b.WriteString(fmt.Sprintf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"0 0 %d %d\" role=\"img\" aria-labelledby=\"%s %s\">", width, height, titleID, descID))
	b.WriteString(fmt.Sprintf("<title id=\"%s\">%s</title>", titleID, template.HTMLEscapeString(fallback(opts.Title, "Funnel chart"))))
	b.WriteString(fmt.Sprintf("<desc id=\"%s\">%s</desc>", descID, template.HTMLEscapeString(fallback(opts.Description, "Stage counts from first exposure to closed deal"))))

	barX := padding + nameColumn
	for i, seg := range segments {
		rowTop := padding + float64(i)*rowHeight
		barY := rowTop + (rowHeight-barHeight)/2
		barW := chartWidth * float64(seg.Count) / float64(maxCount)
		if barW < 2 {
			barW = 2
		}
		color := fallback(seg.Color, "#5B5CFF")

		b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"end\" dominant-baseline=\"middle\">%s</text>",
			barX-10, barY+barHeight/2, axisColor, template.HTMLEscapeString(seg.Stage)))
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"4\" fill=\"%s\" aria-hidden=\"true\"></rect>",
			barX, barY, chartWidth, barHeight, trackColor))
		b.WriteString(fmt.Sprintf("<rect x=\"%.2f\" y=\"%.2f\" width=\"%.2f\" height=\"%.2f\" rx=\"4\" fill=\"%s\" aria-label=\"%s %d\"></rect>",
			barX, barY, barW, barHeight, color, template.HTMLEscapeString(seg.Stage), seg.Count))

		// Short bars get their label to the right of the bar instead of
		// inside it so the text stays readable.
		label := template.HTMLEscapeString(seg.Label)
		if barW > float64(len(seg.Label))*7+16 {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"start\" dominant-baseline=\"middle\">%s</text>",
				barX+8, barY+barHeight/2, labelColor, label))
		} else {
			b.WriteString(fmt.Sprintf("<text x=\"%.2f\" y=\"%.2f\" fill=\"%s\" font-size=\"11\" text-anchor=\"start\" dominant-baseline=\"middle\">%s</text>",
				barX+barW+8, barY+barHeight/2, axisColor, label))
		}
	}

	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}
