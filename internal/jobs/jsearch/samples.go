package jsearch

import (
	"fmt"
	"strings"

	"github.com/careerup/careerup/internal/jobs"
)

// SampleListings returns the static listings served when the API key is
// rejected. The query is substituted into some titles and links.
func SampleListings(query string) []jobs.Listing {
	slug := strings.ToLower(strings.ReplaceAll(query, " ", "-"))

	return []jobs.Listing{
		{
			Title:          query,
			Company:        "Tech Mahindra",
			Location:       "Bangalore, India",
			Description:    fmt.Sprintf("We are looking for a talented %s to join our team. This role involves working on cutting-edge projects with modern technologies. Great benefits, competitive salary, and growth opportunities...", query),
			ApplyLink:      fmt.Sprintf("https://www.naukri.com/%s-jobs-in-bangalore", slug),
			EmploymentType: jobs.EmploymentFullTime,
		},
		{
			Title:          "Software Developer",
			Company:        "Infosys",
			Location:       "Hyderabad, India",
			Description:    "Join our dynamic team building scalable applications for global clients. We value creativity, problem-solving, and continuous learning. Work with cutting-edge technologies...",
			ApplyLink:      "https://www.naukri.com/software-developer-jobs-in-hyderabad",
			EmploymentType: jobs.EmploymentFullTime,
		},
		{
			Title:          query + " - Intern",
			Company:        "Flipkart",
			Location:       "Bangalore, India",
			Description:    "Amazing internship opportunity for students to learn and grow. Work with experienced mentors on real-world e-commerce projects. Stipend provided. PPO opportunity available...",
			ApplyLink:      fmt.Sprintf("https://www.internshala.com/internships/%s-internship-in-bangalore/", slug),
			EmploymentType: jobs.EmploymentInternship,
		},
		{
			Title:          "Backend Engineer",
			Company:        "Paytm",
			Location:       "Noida, India",
			Description:    "Build robust backend systems and APIs for India's leading fintech platform. Experience with databases, cloud platforms, and microservices architecture preferred. Exciting startup culture...",
			ApplyLink:      "https://www.naukri.com/backend-engineer-jobs-in-noida",
			EmploymentType: jobs.EmploymentFullTime,
		},
		{
			Title:          "Full Stack Developer",
			Company:        "Zomato",
			Location:       "Gurugram, India",
			Description:    "Create amazing food-tech experiences that millions use daily. Strong knowledge of modern JavaScript frameworks, Node.js, and databases required. Fast-paced environment...",
			ApplyLink:      "https://www.naukri.com/full-stack-developer-jobs-in-gurgaon",
			EmploymentType: jobs.EmploymentFullTime,
		},
		{
			Title:          query + " Trainee",
			Company:        "TCS",
			Location:       "Pune, India",
			Description:    "Entry-level position for fresh graduates in India's leading IT company. Comprehensive training program with opportunities to work on global projects. Industry-best learning experience...",
			ApplyLink:      fmt.Sprintf("https://www.naukri.com/%s-trainee-jobs-in-pune", slug),
			EmploymentType: jobs.EmploymentFullTime,
		},
	}
}
