package textproc

import (
	"embed"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type stopwordsFile struct {
	Words []string `yaml:"words"`
}

type compoundsFile struct {
	Compounds []string `yaml:"compounds"`
}

type domainTermsFile struct {
	Terms []string `yaml:"terms"`
}

type domainHintsFile struct {
	Hints []struct {
		Pattern string `yaml:"pattern"`
		Tag     string `yaml:"tag"`
	} `yaml:"hints"`
}

var (
	stopWords    = map[string]struct{}{}
	compoundSet  = map[string]struct{}{}
	domainTerms  = map[string]struct{}{}
	domainHints  []domainHint
)

type domainHint struct {
	re  *regexp.Regexp
	tag string
}

func init() {
	var sw stopwordsFile
	mustLoadYAML("data/stopwords.yaml", &sw)
	for _, w := range sw.Words {
		stopWords[w] = struct{}{}
	}

	var cp compoundsFile
	mustLoadYAML("data/compounds.yaml", &cp)
	for _, c := range cp.Compounds {
		compoundSet[c] = struct{}{}
	}

	var dt domainTermsFile
	mustLoadYAML("data/domainterms.yaml", &dt)
	for _, t := range dt.Terms {
		domainTerms[t] = struct{}{}
	}

	var dh domainHintsFile
	mustLoadYAML("data/domainhints.yaml", &dh)
	for _, h := range dh.Hints {
		domainHints = append(domainHints, domainHint{re: regexp.MustCompile(h.Pattern), tag: h.Tag})
	}
}

func mustLoadYAML(path string, out interface{}) {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("textproc: failed to read embedded %s: %v", path, err))
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		panic(fmt.Sprintf("textproc: failed to parse embedded %s: %v", path, err))
	}
}

func isStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

func isCompound(phrase string) bool {
	_, ok := compoundSet[phrase]
	return ok
}

func isDomainTerm(w string) bool {
	_, ok := domainTerms[w]
	return ok
}
