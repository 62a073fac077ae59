package portfolio

const (
	ownerName     = "Rahul Kumar"
	ownerHeadline = "Full-Stack Developer | Java & React Specialist"
	pageTitle     = "Rahul Kumar | Full-Stack Developer"
	pageSummary   = "Portfolio of Rahul Kumar - Full-Stack Developer & Cloud Native Architect"
	profileImage  = "/images/profile.jpeg"

	// aboutMarkup keeps its emphasis spans; it is sanitized before rendering.
	aboutMarkup = `Full-Stack Developer with expertise in <span class="font-semibold text-blue-600">Java</span>,
	<span class="font-semibold text-green-600">Spring Boot</span>, and
	<span class="font-semibold text-purple-600">React.js</span>. Reduced database load by 60% using Redis,
	improved latency by 30% via Kafka. Passionate about building secure, scalable applications with
	microservices architecture.`
)

var socialLinks = []Link{
	{Label: "LinkedIn", URL: "https://www.linkedin.com/in/rahul-kumar-67086087/", Icon: "globe"},
	{Label: "GitHub", URL: "https://github.com/RahulKumar035", Icon: "code"},
	{Label: "LeetCode", URL: "https://leetcode.com/u/nirajrahul1/", Icon: "book"},
}

var skills = []Skill{
	{Icon: "code", Title: "Languages", Description: "Java, JavaScript, TypeScript, HTML/CSS"},
	{Icon: "server", Title: "Frameworks", Description: "Spring Boot, Next.js, React, Node.js"},
	{Icon: "cloud", Title: "DevOps", Description: "Docker, Kubernetes, AWS, CI/CD"},
	{Icon: "chart", Title: "Tools", Description: "Git, Kafka, Redis, Microservices"},
}

var education = []Education{
	{
		Degree:      "PG-DAC (Advanced Computing)",
		Institution: "Sunbeam Institute of Technology, CDAC",
		Period:      "Sep 2022 - Mar 2023",
		Result:      "65.75%",
	},
	{
		Degree:      "B.Tech (Computer Science)",
		Institution: "Rajiv Gandhi Proudyogiki Vishwavidyalaya",
		Period:      "Aug 2018 - Jun 2022",
		Result:      "7.46/10 CGPA",
	},
}

var certifications = []Certification{
	{
		Name:   "PG-DAC (CDAC)",
		Issuer: "Sunbeam Institute of Technology",
		Year:   "2023",
		URL:    "https://drive.google.com/file/d/1R2GcTZ6E-QmfB4djQ9i7ShWq6tAsGVy7/view",
	},
	{
		Name:   "Postman API Expert",
		Issuer: "Postman",
		Year:   "2023",
		URL:    "https://badgr.com/public/assertions/gO8Sui50RJeUDfGbAMi4kA?identity__email=nirajrahul1@gmail.com",
	},
}

var projects = []Project{
	{
		Title:       "WorkHub MicroConnect",
		Description: "Microservices platform with Kafka and Redis",
		Tech:        []string{"Java", "Spring Boot", "Kafka", "Docker"},
		URL:         "https://github.com/RahulKumar035/WorkHub-MicroConnect",
		Achievements: []string{
			"Reduced MySQL queries by 60% via Redis",
			"Processed 1.2K+ events/sec with Kafka",
			"100% unauthorized requests blocked",
		},
	},
	{
		Title:       "Online Movie Ticket Booking",
		Description: "React + Spring Boot application",
		Tech:        []string{"React", "Spring Boot", "AWS", "MySQL"},
		URL:         "https://github.com/RahulKumar035/Online-Movie-Ticket-Booking",
		Achievements: []string{
			"User-friendly booking interface",
			"AWS deployment",
			"Global exception handling",
		},
	},
}

var contactDetails = ContactDetails{
	Email:    "nirajrahul1@gmail.com",
	Location: "Asansol, West Bengal, India",
}
