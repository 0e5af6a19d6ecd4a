package prompts

import (
	"context"
	"fmt"

	"dracor-mcp/internal/mcp"
)

// Definitions returns every prompt template the server offers.
func Definitions() []Definition {
	return []Definition{
		analyzePlay(),
		characterAnalysis(),
		networkAnalysis(),
		comparativeAnalysis(),
		genderAnalysis(),
		historicalContext(),
		fullTextAnalysis(),
		dutchCharacterTagging(),
	}
}

func analyzePlay() Definition {
	const description = "Create a prompt for analyzing a specific play."
	return Definition{
		Name:        "analyze_play",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, e.g. ger", Required: true},
			{Name: "play_name", Description: "Identifier of the play in the corpus, e.g. lessing-emilia-galotti", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName, err := requireArg(args, "corpus_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName, err := requireArg(args, "play_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a drama analysis expert who can help analyze plays from the DraCor (Drama Corpora Project) database.

You have access to the following play:

Corpus: %s
Play: %s

Analyze this play in terms of:
1. Basic information (title, author, year)
2. Structure (acts, scenes)
3. Character relationships
4. Key metrics and statistics

Please provide a comprehensive analysis including:
- Historical context of the play
- Structural analysis
- Character analysis
- Network analysis (how characters relate to each other)
- Notable aspects of this play compared to others from the same period`, corpusName, playName),
			}, nil
		},
	}
}

func characterAnalysis() Definition {
	const description = "Create a prompt for analyzing a specific character."
	return Definition{
		Name:        "character_analysis",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, e.g. ger", Required: true},
			{Name: "play_name", Description: "Identifier of the play in the corpus, e.g. lessing-emilia-galotti", Required: true},
			{Name: "character_id", Description: "Identifier of the character in the play, e.g. odoardo", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName, err := requireArg(args, "corpus_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName, err := requireArg(args, "play_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			characterID, err := requireArg(args, "character_id")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a drama character analysis expert who can help analyze characters from plays in the DraCor database.

You have access to the following character:

Corpus: %s
Play: %s
Character: %s

Analyze this character in terms of:
1. Basic information (name, gender)
2. Importance in the play (based on speech counts, words spoken)
3. Relationships with other characters
4. Character development throughout the play

Please provide a comprehensive character analysis that could help researchers or students understand this character better.`, corpusName, playName, characterID),
			}, nil
		},
	}
}

func networkAnalysis() Definition {
	const description = "Create a prompt for analyzing a character network."
	return Definition{
		Name:        "network_analysis",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, e.g. ger", Required: true},
			{Name: "play_name", Description: "Identifier of the play in the corpus, e.g. lessing-emilia-galotti", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName, err := requireArg(args, "corpus_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName, err := requireArg(args, "play_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a network analysis expert who can help analyze character networks from plays in the DraCor database.

You have access to the following play network:

Corpus: %s
Play: %s

Analyze this play's character network in terms of:
1. Overall network structure and density
2. Central characters (highest degree, betweenness)
3. Character communities or groups
4. Strongest and weakest relationships
5. How the network structure relates to the themes of the play

Please provide a comprehensive network analysis that could help researchers understand the social dynamics in this play.`, corpusName, playName),
			}, nil
		},
	}
}

func comparativeAnalysis() Definition {
	const description = "Create a prompt for comparing two plays."
	return Definition{
		Name:        "comparative_analysis",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name1", Description: "Corpus of the first play, e.g. ger", Required: true},
			{Name: "play_name1", Description: "Identifier of the first play, e.g. lessing-emilia-galotti", Required: true},
			{Name: "corpus_name2", Description: "Corpus of the second play, e.g. rus", Required: true},
			{Name: "play_name2", Description: "Identifier of the second play, e.g. gogol-revizor", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName1, err := requireArg(args, "corpus_name1")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName1, err := requireArg(args, "play_name1")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			corpusName2, err := requireArg(args, "corpus_name2")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName2, err := requireArg(args, "play_name2")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a drama analysis expert who can help compare plays from the DraCor database.

You have access to the following two plays:

Play 1:
Corpus: %s
Play: %s

Play 2:
Corpus: %s
Play: %s

Compare these plays in terms of:
1. Basic information (title, author, year)
2. Structure (acts, scenes, length)
3. Character count and dynamics
4. Network complexity and density
5. Historical context and significance

Please provide a comprehensive comparative analysis that highlights similarities and differences between these plays.`, corpusName1, playName1, corpusName2, playName2),
			}, nil
		},
	}
}

func genderAnalysis() Definition {
	const description = "Create a prompt for analyzing gender representation in a play."
	return Definition{
		Name:        "gender_analysis",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, e.g. ger", Required: true},
			{Name: "play_name", Description: "Identifier of the play in the corpus, e.g. lessing-emilia-galotti", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName, err := requireArg(args, "corpus_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName, err := requireArg(args, "play_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a scholar specializing in gender studies and dramatic literature. You've been asked to analyze gender representation in a drama.

Corpus: %s
Play: %s

Please analyze the play in terms of:
1. Gender distribution of characters
2. Speaking time and importance of male vs. female characters
3. Relationships between characters of different genders
4. Historical context of gender representation in this period
5. Notable aspects of gender portrayal in this play

Your analysis should consider both quantitative data (number of characters, speaking lines) and qualitative aspects (power dynamics, character development).`, corpusName, playName),
			}, nil
		},
	}
}

func historicalContext() Definition {
	const description = "Create a prompt for analyzing the historical context of a play."
	return Definition{
		Name:        "historical_context",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, e.g. ger", Required: true},
			{Name: "play_name", Description: "Identifier of the play in the corpus, e.g. lessing-emilia-galotti", Required: true},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			corpusName, err := requireArg(args, "corpus_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			playName, err := requireArg(args, "play_name")
			if err != nil {
				return mcp.PromptResult{}, err
			}
			return mcp.PromptResult{
				Description: description,
				Text: fmt.Sprintf(`You are a theater historian who specializes in putting dramatic works in their historical context.

Corpus: %s
Play: %s

Please provide a detailed analysis of the historical context of this play, including:
1. Political and social climate when the play was written
2. Theatrical conventions of the period
3. How contemporary events might have influenced the play
4. Reception of the play when it was first performed
5. The play's significance in the author's body of work
6. How the play reflects or challenges the values of its time

Your analysis should help modern readers and scholars understand the play within its original historical framework.`, corpusName, playName),
			}, nil
		},
	}
}

// fullTextAnalysis is a fill-in template: the placeholders stay literal
// for the client to complete after fetching the text.
func fullTextAnalysis() Definition {
	const description = "Template for analyzing the full text of a play."
	return Definition{
		Name:        "full_text_analysis",
		Description: description,
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			return mcp.PromptResult{
				Description: description,
				Text: `I'll analyze the full text of {play_title} by {author} from the {corpus_name} corpus.

## Basic Information
- Title: {play_title}
- Author: {author}
- Written: {written_year}
- Premiere: {premiere_date}

## Full Text Analysis

{analysis}

## Key Themes and Motifs

{themes}

## Language and Style

{style}

## Historical and Cultural Context

{context}`,
			}, nil
		},
	}
}

// dutchCharacterTagging describes a tagging audit workflow. Like the
// full text template it is returned as-is, with the play reference left
// for the client to fill.
func dutchCharacterTagging() Definition {
	const description = "Template for analyzing character ID tagging issues in Dutch historical plays."
	return Definition{
		Name:        "dutch_character_tagging_analysis",
		Description: description,
		Arguments: []mcp.PromptArgument{
			{Name: "corpus_name", Description: "Identifier of the corpus, defaults to dutch"},
			{Name: "play_name", Description: "Identifier of the play to audit"},
		},
		Handler: func(ctx context.Context, args map[string]string) (mcp.PromptResult, error) {
			return mcp.PromptResult{
				Description: description,
				Text: `Your task is to analyze historical plays from the DraCor database to identify character ID tagging issues. Specifically:

1. Select a play from the DraCor database and perform a comprehensive analysis of its character relations, full text, and structure.
2. Identify all possible inconsistencies in character ID tagging, including:
   * Spelling variations of character names
   * Character name confusion or conflation
   * Historical spelling variants
   * Discrepancies between character IDs and stage directions
3. Create a detailed report of potential character ID tagging errors in a structured table format with the following columns:
   * Text ID (unique identifier for the play)
   * Current character ID used in the database
   * Problematic variant(s) found in the text
   * Type of error (spelling, variation, confusion, etc.)
   * Explanation of the issue

Focus on the play "{play_name}" from the {corpus_name} corpus if specified, otherwise select a suitable historical play.

Approach:
1. First examine the play's basic information and structure
2. Review the full character list with their IDs
3. Analyze the TEI XML text, focusing on character speech tags (<sp>) and stage directions (<stage>)
4. Compare names used in different contexts throughout the text
5. Note historical spelling conventions and variants specific to Dutch literature of the period
6. Present your findings in the required tabular format`,
			}, nil
		},
	}
}
