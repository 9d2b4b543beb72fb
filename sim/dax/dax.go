// Package dax decodes Pegasus DAX workflow descriptions into task graphs
// (spec §6 "Workflow input (DAX)").
package dax

import (
	"encoding/xml"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/workflowsim-go/workflowsim/sim/catalog"
	"github.com/workflowsim-go/workflowsim/sim/workflow"
)

// minTaskLength is the floor applied to every scaled task length (§6
// "runtime · 1000 ... floored to 100").
const minTaskLength = 100

type adag struct {
	Jobs   []xmlJob   `xml:"job"`
	Childs []xmlChild `xml:"child"`
}

type xmlJob struct {
	ID      string   `xml:"id,attr"`
	Name    string   `xml:"name,attr"`
	Runtime float64  `xml:"runtime,attr"`
	Uses    []xmlUse `xml:"uses"`
}

type xmlUse struct {
	Name string `xml:"name,attr"`
	Link string `xml:"link,attr"`
	Size int64  `xml:"size,attr"`
}

type xmlChild struct {
	Ref     string      `xml:"ref,attr"`
	Parents []xmlParent `xml:"parent"`
}

type xmlParent struct {
	Ref string `xml:"ref,attr"`
}

// Parse decodes a DAX document from r into a task graph. runtimeScale
// multiplies every job's runtime before the ·1000/floor-100 conversion
// (§6 "Scales are post-multiplied by a global runtime_scale"). Every
// `<uses>` whose link is neither "input" nor "output" is skipped with a
// warning rather than rejected (§7 "Invalid file links in DAX are logged
// and the file ignored").
func Parse(r io.Reader, runtimeScale float64) ([]*workflow.Task, error) {
	if runtimeScale <= 0 {
		runtimeScale = 1.0
	}

	var doc adag
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	tasks := make([]*workflow.Task, 0, len(doc.Jobs))
	byID := make(map[string]*workflow.Task, len(doc.Jobs))

	for _, j := range doc.Jobs {
		length := math.Floor(j.Runtime*runtimeScale*1000 + 0.5)
		if length < minTaskLength {
			length = minTaskLength
		}

		t, err := workflow.NewTask(j.ID, j.Name, length, 1)
		if err != nil {
			return nil, err
		}

		for _, u := range j.Uses {
			var ft catalog.FileType
			switch u.Link {
			case "input":
				ft = catalog.FileInput
			case "output":
				ft = catalog.FileOutput
			default:
				logrus.Warnf("dax: job %s: ignoring file %q with unrecognized link %q", j.ID, u.Name, u.Link)
				continue
			}
			t.Files = append(t.Files, catalog.FileItem{Name: u.Name, Size: u.Size, Type: ft})
		}

		byID[t.ID] = t
		tasks = append(tasks, t)
	}

	for _, c := range doc.Childs {
		child, ok := byID[c.Ref]
		if !ok {
			logrus.Warnf("dax: child element references unknown job id %q", c.Ref)
			continue
		}
		for _, p := range c.Parents {
			parent, ok := byID[p.Ref]
			if !ok {
				logrus.Warnf("dax: child %s references unknown parent id %q", c.Ref, p.Ref)
				continue
			}
			child.Parents = append(child.Parents, parent.ID)
			parent.Children = append(parent.Children, child.ID)
		}
	}

	return tasks, nil
}
