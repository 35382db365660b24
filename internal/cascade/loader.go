package cascade

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// xmlDocument mirrors the subset of the OpenCV Haar-cascade XML schema
// spec.md §4.3 and §6 describe: opencv_storage/cascade/{width,height,
// stages,features}, with whitespace-separated numeric tokens inside
// several text nodes.
type xmlDocument struct {
	XMLName xml.Name   `xml:"opencv_storage"`
	Cascade xmlCascade `xml:"cascade"`
}

type xmlCascade struct {
	Width    int          `xml:"width"`
	Height   int          `xml:"height"`
	Stages   []xmlStage   `xml:"stages>_"`
	Features []xmlFeature `xml:"features>_"`
}

type xmlStage struct {
	MaxWeakCount    int       `xml:"maxWeakCount"`
	StageThreshold  float64   `xml:"stageThreshold"`
	WeakClassifiers []xmlWeak `xml:"weakClassifiers>_"`
}

type xmlWeak struct {
	InternalNodes string `xml:"internalNodes"`
	LeafValues    string `xml:"leafValues"`
}

type xmlFeature struct {
	Rects []string `xml:"rects>_"`
}

// Load parses an OpenCV Haar-cascade XML document and returns the
// flattened cascade it describes. No partial cascade is ever returned:
// on any error the result is nil.
func Load(data []byte) (*Cascade, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("cascade: malformed XML: %w", err)
	}

	c := doc.Cascade
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("cascade: missing or non-positive width/height")
	}
	if len(c.Stages) == 0 {
		return nil, fmt.Errorf("cascade: no stages")
	}

	flat := []float64{float64(c.Width), float64(c.Height)}

	for si, stage := range c.Stages {
		if len(stage.WeakClassifiers) == 0 {
			return nil, fmt.Errorf("cascade: stage %d has no weak classifiers", si)
		}
		flat = append(flat, stage.StageThreshold, float64(len(stage.WeakClassifiers)))

		for wi, weak := range stage.WeakClassifiers {
			nodes, err := parseTokens(weak.InternalNodes)
			if err != nil {
				return nil, fmt.Errorf("cascade: stage %d weak %d: internalNodes: %w", si, wi, err)
			}
			if len(nodes) < 4 {
				return nil, fmt.Errorf("cascade: stage %d weak %d: internalNodes has %d numbers, want 4", si, wi, len(nodes))
			}
			tilted, featureIndex, nodeThreshold := nodes[0], int(nodes[2]), nodes[3]

			leaves, err := parseTokens(weak.LeafValues)
			if err != nil {
				return nil, fmt.Errorf("cascade: stage %d weak %d: leafValues: %w", si, wi, err)
			}
			if len(leaves) < 2 {
				return nil, fmt.Errorf("cascade: stage %d weak %d: leafValues has %d numbers, want 2", si, wi, len(leaves))
			}

			if featureIndex < 0 || featureIndex >= len(c.Features) {
				return nil, fmt.Errorf("cascade: stage %d weak %d: featureIndex %d out of range", si, wi, featureIndex)
			}
			feature := c.Features[featureIndex]
			if len(feature.Rects) == 0 {
				return nil, fmt.Errorf("cascade: stage %d weak %d: feature %d has no rects", si, wi, featureIndex)
			}

			flat = append(flat, tilted, float64(len(feature.Rects)))
			for ri, rectText := range feature.Rects {
				rect, err := parseTokens(rectText)
				if err != nil {
					return nil, fmt.Errorf("cascade: stage %d weak %d rect %d: %w", si, wi, ri, err)
				}
				if len(rect) != 5 {
					return nil, fmt.Errorf("cascade: stage %d weak %d rect %d: has %d numbers, want 5", si, wi, ri, len(rect))
				}
				flat = append(flat, rect...)
			}

			flat = append(flat, nodeThreshold, leaves[0], leaves[1])
		}
	}

	return New(flat)
}

// parseTokens splits a whitespace-separated text node into numbers,
// matching §6's "whitespace-separated numeric tokens ... numeric
// coercion best-effort per token".
func parseTokens(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("non-numeric token %q", f)
		}
		out[i] = v
	}
	return out, nil
}
