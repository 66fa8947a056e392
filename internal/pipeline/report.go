package pipeline

import (
	"encoding/json"
	"os"
)

// ReportByCompany groups the jobs of a response by company name.
func (r *Response) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range r.Jobs {
		report[job.Company] = append(report[job.Company], map[string]string{
			"title":           job.Title,
			"location":        job.Location,
			"employment type": job.EmploymentType,
			"apply link":      job.ApplyLink,
		})
	}
	return report
}

// DumpToTmpFile writes the response as indented JSON to a new temp file and
// returns its name.
func (r *Response) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "careerup_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}
