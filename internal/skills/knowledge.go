// Package skills holds the skill knowledge base, the resolver built on it,
// and the job description skill extractor.
package skills

import (
	"fmt"
	"regexp"
	"strings"
)

// Category is a broad skill grouping used for partial credit.
type Category string

// Skill categories.
const (
	CategoryProgrammingLanguages Category = "programming_languages"
	CategoryFrontend             Category = "frontend"
	CategoryBackend              Category = "backend"
	CategoryDatabases            Category = "databases"
	CategoryDevOps               Category = "devops"
	CategoryCloud                Category = "cloud"
	CategoryDataScience          Category = "data_science"
	CategoryAPIs                 Category = "apis"
	CategoryMobile               Category = "mobile"
	CategoryTesting              Category = "testing"
	CategorySoftSkills           Category = "soft_skills"
	CategoryNone                 Category = ""
)

// Group is one canonical skill and its registered spellings.
type Group struct {
	Canonical string
	Variants  []string
	Category  Category
}

// scanVariantMinLen is the shortest variant included in resume keyword scans.
// Shorter variants ("ts", "ml", "cv", "node") are too ambiguous in free text.
const scanVariantMinLen = 5

// KnowledgeBase is the immutable skill registry. Build it once and share it;
// nothing mutates it after NewKnowledgeBase returns.
type KnowledgeBase struct {
	groups             []Group
	variantToCanonical map[string]string
	canonicalToGroup   map[string]int
	patterns           map[string]*regexp.Regexp
	scanTerms          []string
}

// NewKnowledgeBase indexes groups. It fails if a spelling maps to two canonicals.
func NewKnowledgeBase(groups []Group) (*KnowledgeBase, error) {
	kb := &KnowledgeBase{
		groups:             make([]Group, 0, len(groups)),
		variantToCanonical: make(map[string]string),
		canonicalToGroup:   make(map[string]int),
		patterns:           make(map[string]*regexp.Regexp),
	}

	register := func(term, canonical string) error {
		if existing, ok := kb.variantToCanonical[term]; ok && existing != canonical {
			return fmt.Errorf("skill term %q maps to both %q and %q", term, existing, canonical)
		}
		kb.variantToCanonical[term] = canonical
		kb.patterns[term] = wordPattern(term)
		return nil
	}

	for _, g := range groups {
		canonical := normalizeTerm(g.Canonical)
		if canonical == "" {
			return nil, fmt.Errorf("skill group with empty canonical name")
		}
		if _, dup := kb.canonicalToGroup[canonical]; dup {
			return nil, fmt.Errorf("duplicate skill group %q", canonical)
		}

		normalized := Group{Canonical: canonical, Category: g.Category}
		if err := register(canonical, canonical); err != nil {
			return nil, err
		}
		if len(canonical) >= 2 {
			kb.scanTerms = append(kb.scanTerms, canonical)
		}
		for _, v := range g.Variants {
			v = normalizeTerm(v)
			if v == "" {
				continue
			}
			if err := register(v, canonical); err != nil {
				return nil, err
			}
			normalized.Variants = append(normalized.Variants, v)
			if len(v) >= scanVariantMinLen {
				kb.scanTerms = append(kb.scanTerms, v)
			}
		}

		kb.canonicalToGroup[canonical] = len(kb.groups)
		kb.groups = append(kb.groups, normalized)
	}

	return kb, nil
}

// MustKnowledgeBase is NewKnowledgeBase that panics on error.
func MustKnowledgeBase(groups []Group) *KnowledgeBase {
	kb, err := NewKnowledgeBase(groups)
	if err != nil {
		panic(fmt.Sprintf("skills: %v", err))
	}
	return kb
}

// Groups returns the registered groups in registration order.
func (kb *KnowledgeBase) Groups() []Group {
	out := make([]Group, len(kb.groups))
	copy(out, kb.groups)
	return out
}

// ScanTerms returns the terms used for whole-document keyword scans, in registry order.
func (kb *KnowledgeBase) ScanTerms() []string {
	out := make([]string, len(kb.scanTerms))
	copy(out, kb.scanTerms)
	return out
}

// lookup returns the canonical name for a normalized term.
func (kb *KnowledgeBase) lookup(term string) (string, bool) {
	c, ok := kb.variantToCanonical[term]
	return c, ok
}

// group returns the group for a canonical name.
func (kb *KnowledgeBase) group(canonical string) (Group, bool) {
	idx, ok := kb.canonicalToGroup[canonical]
	if !ok {
		return Group{}, false
	}
	return kb.groups[idx], true
}

// pattern returns the whole-word pattern for a term, compiling unknown terms on demand.
func (kb *KnowledgeBase) pattern(term string) *regexp.Regexp {
	if re, ok := kb.patterns[term]; ok {
		return re
	}
	return wordPattern(term)
}

// wordPattern matches term case-insensitively when it is not glued to other
// word characters. The term itself is capture group 1.
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9_])(` + regexp.QuoteMeta(term) + `)(?:$|[^a-z0-9_])`)
}

func normalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DefaultGroups is the built-in registry.
var DefaultGroups = []Group{
	// Programming languages
	{Canonical: "javascript", Variants: []string{"js", "ecmascript", "es6", "es2015", "es2016", "es2017"}, Category: CategoryProgrammingLanguages},
	{Canonical: "typescript", Variants: []string{"ts"}, Category: CategoryProgrammingLanguages},
	{Canonical: "python", Variants: []string{"python3", "python2", "py"}, Category: CategoryProgrammingLanguages},
	{Canonical: "java", Category: CategoryProgrammingLanguages},
	{Canonical: "c++", Variants: []string{"cpp", "cplusplus", "c plus plus"}, Category: CategoryProgrammingLanguages},
	{Canonical: "c#", Variants: []string{"csharp", "c sharp"}, Category: CategoryProgrammingLanguages},
	{Canonical: "ruby", Variants: []string{"rb"}, Category: CategoryProgrammingLanguages},
	{Canonical: "go", Variants: []string{"golang"}, Category: CategoryProgrammingLanguages},
	{Canonical: "rust", Category: CategoryProgrammingLanguages},
	{Canonical: "swift", Category: CategoryProgrammingLanguages},
	{Canonical: "kotlin", Variants: []string{"kt"}, Category: CategoryProgrammingLanguages},
	{Canonical: "php", Category: CategoryProgrammingLanguages},
	{Canonical: "scala", Category: CategoryProgrammingLanguages},
	{Canonical: "r", Variants: []string{"rlang", "r lang"}, Category: CategoryProgrammingLanguages},
	{Canonical: "dart", Category: CategoryProgrammingLanguages},
	{Canonical: "elixir", Category: CategoryProgrammingLanguages},
	{Canonical: "perl", Category: CategoryProgrammingLanguages},
	{Canonical: "lua", Category: CategoryProgrammingLanguages},
	{Canonical: "haskell", Category: CategoryProgrammingLanguages},
	{Canonical: "clojure", Category: CategoryProgrammingLanguages},

	// Frontend
	{Canonical: "react", Variants: []string{"reactjs", "react.js", "react js"}, Category: CategoryFrontend},
	{Canonical: "angular", Variants: []string{"angularjs", "angular.js", "angular js"}, Category: CategoryFrontend},
	{Canonical: "vue", Variants: []string{"vuejs", "vue.js", "vue js"}, Category: CategoryFrontend},
	{Canonical: "svelte", Variants: []string{"sveltejs", "svelte.js"}, Category: CategoryFrontend},
	{Canonical: "next.js", Variants: []string{"nextjs", "next js", "next"}, Category: CategoryFrontend},
	{Canonical: "nuxt.js", Variants: []string{"nuxtjs", "nuxt"}, Category: CategoryFrontend},
	{Canonical: "html", Variants: []string{"html5"}, Category: CategoryFrontend},
	{Canonical: "css", Variants: []string{"css3"}, Category: CategoryFrontend},
	{Canonical: "sass", Variants: []string{"scss"}, Category: CategoryFrontend},
	{Canonical: "tailwind", Variants: []string{"tailwindcss", "tailwind css"}, Category: CategoryFrontend},
	{Canonical: "bootstrap", Category: CategoryFrontend},
	{Canonical: "jquery", Category: CategoryFrontend},
	{Canonical: "redux", Category: CategoryFrontend},
	{Canonical: "webpack", Category: CategoryFrontend},
	{Canonical: "vite", Category: CategoryFrontend},

	// Backend
	{Canonical: "node.js", Variants: []string{"node", "nodejs", "node js"}, Category: CategoryBackend},
	{Canonical: "express", Variants: []string{"expressjs", "express.js"}, Category: CategoryBackend},
	{Canonical: "django", Category: CategoryBackend},
	{Canonical: "flask", Category: CategoryBackend},
	{Canonical: "fastapi", Variants: []string{"fast api"}, Category: CategoryBackend},
	{Canonical: "spring", Variants: []string{"spring boot", "springboot"}, Category: CategoryBackend},
	{Canonical: "rails", Variants: []string{"ruby on rails", "ror"}, Category: CategoryBackend},
	{Canonical: ".net", Variants: []string{"dotnet", "dot net", "asp.net"}, Category: CategoryBackend},
	{Canonical: "nestjs", Variants: []string{"nest.js", "nest js"}, Category: CategoryBackend},
	{Canonical: "fastify", Category: CategoryBackend},
	{Canonical: "laravel", Category: CategoryBackend},
	{Canonical: "gin", Category: CategoryBackend},
	{Canonical: "fiber", Category: CategoryBackend},

	// Databases
	{Canonical: "sql", Category: CategoryDatabases},
	{Canonical: "postgresql", Variants: []string{"postgres", "psql", "pg"}, Category: CategoryDatabases},
	{Canonical: "mysql", Category: CategoryDatabases},
	{Canonical: "mongodb", Variants: []string{"mongo"}, Category: CategoryDatabases},
	{Canonical: "redis", Category: CategoryDatabases},
	{Canonical: "elasticsearch", Variants: []string{"elastic search", "elastic"}, Category: CategoryDatabases},
	{Canonical: "dynamodb", Variants: []string{"dynamo db", "dynamo"}, Category: CategoryDatabases},
	{Canonical: "cassandra", Category: CategoryDatabases},
	{Canonical: "sqlite", Category: CategoryDatabases},
	{Canonical: "firebase", Category: CategoryDatabases},
	{Canonical: "supabase", Category: CategoryDatabases},
	{Canonical: "prisma", Category: CategoryDatabases},
	{Canonical: "sequelize", Category: CategoryDatabases},
	{Canonical: "typeorm", Category: CategoryDatabases},
	{Canonical: "knex", Variants: []string{"knex.js"}, Category: CategoryDatabases},

	// DevOps
	{Canonical: "docker", Category: CategoryDevOps},
	{Canonical: "kubernetes", Variants: []string{"k8s", "kube"}, Category: CategoryDevOps},
	{Canonical: "terraform", Category: CategoryDevOps},
	{Canonical: "ansible", Category: CategoryDevOps},
	{Canonical: "jenkins", Category: CategoryDevOps},
	{Canonical: "ci/cd", Variants: []string{"cicd", "ci cd", "ci-cd", "continuous integration", "continuous delivery"}, Category: CategoryDevOps},
	{Canonical: "github actions", Variants: []string{"gh actions"}, Category: CategoryDevOps},
	{Canonical: "gitlab ci", Variants: []string{"gitlab-ci"}, Category: CategoryDevOps},
	{Canonical: "nginx", Category: CategoryDevOps},
	{Canonical: "linux", Category: CategoryDevOps},
	{Canonical: "bash", Variants: []string{"shell", "shell scripting"}, Category: CategoryDevOps},

	// Cloud
	{Canonical: "aws", Variants: []string{"amazon web services"}, Category: CategoryCloud},
	{Canonical: "azure", Variants: []string{"microsoft azure"}, Category: CategoryCloud},
	{Canonical: "gcp", Variants: []string{"google cloud", "google cloud platform"}, Category: CategoryCloud},

	// Data science and ML
	{Canonical: "machine learning", Variants: []string{"ml", "machine-learning"}, Category: CategoryDataScience},
	{Canonical: "deep learning", Variants: []string{"dl", "deep-learning"}, Category: CategoryDataScience},
	{Canonical: "natural language processing", Variants: []string{"nlp"}, Category: CategoryDataScience},
	{Canonical: "computer vision", Variants: []string{"cv"}, Category: CategoryDataScience},
	{Canonical: "tensorflow", Variants: []string{"tf"}, Category: CategoryDataScience},
	{Canonical: "pytorch", Variants: []string{"torch"}, Category: CategoryDataScience},
	{Canonical: "pandas", Category: CategoryDataScience},
	{Canonical: "numpy", Category: CategoryDataScience},
	{Canonical: "scikit-learn", Variants: []string{"sklearn", "scikit learn"}, Category: CategoryDataScience},
	{Canonical: "data science", Variants: []string{"data-science"}, Category: CategoryDataScience},
	{Canonical: "data engineering", Variants: []string{"data-engineering"}, Category: CategoryDataScience},
	{Canonical: "spark", Variants: []string{"apache spark", "pyspark"}, Category: CategoryDataScience},

	// APIs and architecture
	{Canonical: "rest", Variants: []string{"restful", "rest api", "restful api"}, Category: CategoryAPIs},
	{Canonical: "graphql", Variants: []string{"graph ql"}, Category: CategoryAPIs},
	{Canonical: "microservices", Variants: []string{"micro services"}, Category: CategoryAPIs},
	{Canonical: "api", Category: CategoryAPIs},
	{Canonical: "oauth", Variants: []string{"oauth2", "oauth 2.0"}, Category: CategoryAPIs},
	{Canonical: "grpc", Category: CategoryAPIs},
	{Canonical: "websocket", Variants: []string{"websockets", "web socket", "socket.io"}, Category: CategoryAPIs},
	{Canonical: "rabbitmq", Variants: []string{"rabbit mq"}, Category: CategoryAPIs},
	{Canonical: "kafka", Variants: []string{"apache kafka"}, Category: CategoryAPIs},

	// Tools and practices (uncategorized)
	{Canonical: "git", Variants: []string{"github", "gitlab", "bitbucket"}},
	{Canonical: "agile"},
	{Canonical: "scrum"},
	{Canonical: "jira"},
	{Canonical: "figma"},
	{Canonical: "photoshop", Variants: []string{"adobe photoshop"}},
	{Canonical: "illustrator", Variants: []string{"adobe illustrator"}},

	// BI and analytics (uncategorized)
	{Canonical: "excel", Variants: []string{"microsoft excel", "ms excel"}},
	{Canonical: "power bi", Variants: []string{"powerbi", "power-bi"}},
	{Canonical: "tableau"},
	{Canonical: "looker"},

	// Mobile
	{Canonical: "react native", Variants: []string{"react-native", "reactnative"}, Category: CategoryMobile},
	{Canonical: "flutter", Category: CategoryMobile},
	{Canonical: "ios", Category: CategoryMobile},
	{Canonical: "android", Category: CategoryMobile},

	// Testing
	{Canonical: "jest", Category: CategoryTesting},
	{Canonical: "mocha", Category: CategoryTesting},
	{Canonical: "cypress", Category: CategoryTesting},
	{Canonical: "playwright", Category: CategoryTesting},
	{Canonical: "selenium", Category: CategoryTesting},

	// Soft skills
	{Canonical: "communication", Category: CategorySoftSkills},
	{Canonical: "leadership", Category: CategorySoftSkills},
	{Canonical: "problem solving", Variants: []string{"problem-solving"}, Category: CategorySoftSkills},
	{Canonical: "teamwork", Variants: []string{"team work", "collaboration"}, Category: CategorySoftSkills},
	{Canonical: "project management", Variants: []string{"project-management"}, Category: CategorySoftSkills},
}
