package ai

const AnalystSystemPrompt = `You are an expert philosophical analyst working with the analysed episodes of a philosophy podcast. You answer precisely, stay close to the provided material and never invent episodes, quotes or thinkers.`

const EvolutionPrompt = `
# Task Context
You are tracing how philosophical themes evolve across a series of podcast episodes.

# Background Data
Episodes in chronological order:
%s

%s

# Detailed Task Description & Rules
Identify:
1. How understanding deepens over time
2. New perspectives introduced
3. Shifts in approach or emphasis
4. Building of complex ideas from simple ones

- Only reference episodes listed above, by title.
- Keep every description to two or three sentences.

# Output Formatting
Return a JSON object with a single key "points" holding an array of evolution points, each with: theme, evolution_type, episodes_involved, description.
`

const WisdomPrompt = `
# Task Context
You are synthesizing practical wisdom collected from multiple philosophical discussions.

# Background Data
Life Advice:
%s

Mindset Shifts:
%s

%s

# Detailed Task Description & Rules
Create a synthesized wisdom guide with:
1. Core principles (3-5)
2. Key practices (3-5)
3. Common pitfalls to avoid
4. Integration strategies

# Output Formatting
Return a JSON object with the keys core_principles, key_practices, pitfalls, integration_strategies. Every value is an array of strings.
`

const PatternPrompt = `
# Task Context
You are identifying philosophical patterns in a sample of concepts discussed on a podcast.

# Background Data
%s

# Detailed Task Description & Rules
Find patterns like:
- Conceptual hierarchies
- Opposing pairs
- Cultural influences
- Philosophical traditions

# Output Formatting
Return a JSON object with a single key "patterns" holding an array of objects with: pattern_type, description, concepts.
`

const ContradictionPrompt = `
# Task Context
You are analysing philosophical positions taken in different episodes for contradictions, tensions or paradoxes.

# Background Data
%s

# Detailed Task Description & Rules
Identify:
1. Direct contradictions between episodes
2. Philosophical tensions or paradoxes
3. Evolving views that seem contradictory
4. Dialectical oppositions

For each finding, provide:
- type (contradiction/tension/paradox/dialectic)
- episodes_involved
- description
- philosophical_significance

# Output Formatting
Return a JSON object with a single key "findings" holding the array of findings. Return an empty array if nothing qualifies.
`

const UniquePrompt = `
# Task Context
You are selecting the most unique and valuable philosophical contributions from a list of insights.

# Background Data
%s

# Detailed Task Description & Rules
Select 5-10 insights that:
1. Offer genuinely novel perspectives
2. Challenge conventional thinking
3. Provide practical value
4. Bridge different philosophical traditions

For each, explain why it is uniquely valuable.

# Output Formatting
Return a JSON object with a single key "contributions" holding an array of objects with: insight, episode, uniqueness_reason, practical_value.
`

const ApplicationPrompt = `
# Task Context
You are designing a practical application framework from philosophical wisdom.

# Background Data
Daily Practices:
%s

Mindset Tools:
%s

%s

# Detailed Task Description & Rules
Design:
1. A 30-day practice plan
2. Decision-making frameworks
3. Thought experiments
4. Integration strategies

Make it practical and actionable.

# Output Formatting
Return a JSON object with the keys thirty_day_plan, decision_frameworks, experiments, integration_tips. Every value is an array of strings.
`

const MetaPrompt = `
# Task Context
You are reflecting on a philosophical analysis that spans multiple podcast episodes.

# Background Data
Thematic Evolution: %d patterns identified
Philosophical Patterns: %d patterns found
Contradictions: %d tensions identified
Unique Contributions: %d novel insights

# Detailed Task Description & Rules
Generate 3-5 meta-insights about:
1. The overall philosophical approach of the podcast
2. Unique contributions to philosophical discourse
3. Practical value for listeners
4. Areas for deeper exploration

# Output Formatting
Return a JSON object with a single key "insights" holding an array of insight strings.
`

const QueryPrompt = `
# Task Context
You are an expert on a philosophy podcast answering a listener's question using knowledge from multiple episodes.

# Background Data
Relevant Episodes:
%s

# Detailed Task Description & Rules
Provide a comprehensive answer that:
1. Synthesizes insights across episodes
2. Shows how ideas connect or evolve
3. Suggests specific episodes for deeper exploration

- Cite every episode you draw on with its id in double square brackets, e.g. [[ep-12]].
- Only cite ids that appear in the background data.
- If the episodes do not cover the question, say so plainly.

# Immediate Task Description or Request
Question: %s
`

const EpisodeQueryPrompt = `
# Task Context
You are an expert on philosophical content analysis answering a question about a single podcast episode.

# Background Data
%s

# Detailed Task Description & Rules
- Answer from the episode context only.
- Reference specific concepts, insights or advice from the episode.
- Cite the episode as [[%s]] when you draw on it.

# Immediate Task Description or Request
Question: %s
`

const LearningPathPrompt = `
# Task Context
You are guiding a listener from "%s" towards an understanding of "%s" through podcast episodes.

# Background Data
Episodes in the proposed order:
%s

# Detailed Task Description & Rules
- Explain in one sentence per episode what it contributes to the journey.
- Keep the given order and refer to episodes by their id.

# Output Formatting
Return a JSON object with a single key "steps" holding an array of objects with: episode_id, reason.
`
