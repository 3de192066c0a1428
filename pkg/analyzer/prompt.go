// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package analyzer

import (
	"golang.org/x/text/language"
)

var (
	// SupportedLanguages lists the languages with a default prompt.
	// The first entry is the fallback.
	SupportedLanguages = []language.Tag{
		language.English,
		language.BrazilianPortuguese,
	}

	matcher = language.NewMatcher(SupportedLanguages)

	defaultPrompts = map[language.Tag]string{
		language.English: "Analyze the following system information. " +
			"Summarize the machine's configuration, point out potential problems " +
			"or bottlenecks, and suggest improvements.",
		language.BrazilianPortuguese: "Analise as informações do sistema a seguir. " +
			"Resuma a configuração da máquina, aponte possíveis problemas " +
			"ou gargalos e sugira melhorias.",
	}
)

// MatchLanguage resolves a language preference such as "pt-BR", "pt" or
// "fr, pt;q=0.8" to one of SupportedLanguages, falling back to English.
func MatchLanguage(pref string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return SupportedLanguages[0]
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return SupportedLanguages[0]
	}
	return SupportedLanguages[idx]
}

// DefaultPrompt returns the built-in analysis prompt for tag.
func DefaultPrompt(tag language.Tag) string {
	if p, ok := defaultPrompts[tag]; ok {
		return p
	}
	return defaultPrompts[MatchLanguage(tag.String())]
}
