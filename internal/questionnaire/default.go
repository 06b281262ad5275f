package questionnaire

// Default returns the built-in Sherpa evaluation framework for Bittensor
// subnets: the Service↔Research and Intelligence↔Resource axes plus the
// composite quality criteria. Weights are authored so each pole sums to 10.
func Default() *Questionnaire {
	return &Questionnaire{
		Name: "sherpa-subnet-framework",
		Axes: []Axis{
			{
				ID: "service-research",
				Positive: Pole{
					ID: "research",
					Questions: []Question{
						{
							ID:        "research_deep_problems",
							Text:      "Are they solving deep problems that don't have clear solutions yet?",
							Rationale: "Evaluates whether the subnet is focused on frontier exploration, not application",
							Weight:    3.0,
						},
						{
							ID:        "research_open_results",
							Text:      "Does it conduct open research with public results?",
							Rationale: "Assesses if research findings and developments are shared publicly",
							Weight:    2.0,
						},
						{
							ID:        "research_academic_team",
							Text:      "Is the team's background more academic or research-heavy?",
							Rationale: "Assesses if the core contributors have experience in science or R&D",
							Weight:    2.0,
						},
						{
							ID:        "research_breakthrough_roadmap",
							Text:      "Does the roadmap prioritize breakthroughs over monetization?",
							Rationale: "Looks at whether the focus is progress and discovery, not short-term revenue",
							Weight:    1.5,
						},
						{
							ID:        "research_experimental_tech",
							Text:      "Are they working on emerging or experimental technologies?",
							Rationale: "Evaluates how cutting-edge or exploratory the project is",
							Weight:    1.5,
						},
					},
				},
				Negative: Pole{
					ID: "service",
					Questions: []Question{
						{
							ID:        "service_working_product",
							Text:      "Is there already a working product or service?",
							Rationale: "Evaluates whether the subnet has a working product that users can interact with",
							Weight:    2.75,
						},
						{
							ID:        "service_immediate_utility",
							Text:      "Does it offer clear, immediate utility?",
							Rationale: "Evaluates whether users or other systems can already benefit from its outputs",
							Weight:    2.75,
						},
						{
							ID:        "service_revenue_model",
							Text:      "Is there a current and obvious revenue model?",
							Rationale: "Assesses if the project is already making money or has a monetization plan",
							Weight:    1.5,
						},
						{
							ID:        "service_third_party_use",
							Text:      "Are there real-world use cases already implemented by third parties?",
							Rationale: "Validates if outside developers or businesses are actually using the subnet",
							Weight:    2.0,
						},
						{
							ID:        "service_adoption_metrics",
							Text:      "Are there measurable usage or adoption metrics?",
							Rationale: "Seeks evidence that people are actually using the service",
							Weight:    0.5,
						},
						{
							ID:        "service_impl_docs",
							Text:      "Is the documentation geared toward implementation?",
							Rationale: "Checks if the docs are practical and help others build or integrate quickly",
							Weight:    0.5,
						},
					},
				},
			},
			{
				ID: "intelligence-resource",
				Positive: Pole{
					ID: "intelligence",
					Questions: []Question{
						{
							ID:        "intelligence_processing",
							Text:      "Is its main value in intelligent processing?",
							Rationale: "Evaluates if the computational tasks require significant AI or algorithmic intelligence",
							Weight:    2.5,
						},
						{
							ID:        "intelligence_expertise",
							Text:      "Does it take real expertise to join and contribute?",
							Rationale: "Assesses how much skill or knowledge is needed to be useful in the subnet",
							Weight:    3.0,
						},
						{
							ID:        "intelligence_new_knowledge",
							Text:      "Is it generating new knowledge or insights?",
							Rationale: "Evaluates whether it creates value by solving or learning, not just running tasks",
							Weight:    1.0,
						},
						{
							ID:        "intelligence_emergent",
							Text:      "Does it facilitate emergent intelligence?",
							Rationale: "Evaluates if the subnet enables new forms of intelligence to emerge from interactions",
							Weight:    0.5,
						},
						{
							ID:        "intelligence_adaptive",
							Text:      "Does the system learn, adapt, or improve over time?",
							Rationale: "Checks for dynamic, self-improving capabilities in the subnet",
							Weight:    3.0,
						},
					},
				},
				Negative: Pole{
					ID: "resource",
					Questions: []Question{
						{
							ID:        "resource_efficiency",
							Text:      "Is it resource-efficient relative to its purpose?",
							Rationale: "Evaluates if the subnet uses computational resources efficiently",
							Weight:    2.0,
						},
						{
							ID:        "resource_hardware",
							Text:      "Does it have high hardware requirements?",
							Rationale: "Assesses the level of hardware needed to participate",
							Weight:    2.0,
						},
						{
							ID:        "resource_utility",
							Text:      "Is it more of a utility than a brainy system?",
							Rationale: "Checks whether the subnet is about availability and throughput, not intelligence",
							Weight:    2.0,
						},
						{
							ID:        "resource_location",
							Text:      "Does location matter a lot for performance?",
							Rationale: "Assesses if physical placement (latency, jurisdiction) affects the subnet",
							Weight:    1.0,
						},
						{
							ID:        "resource_reward_correlation",
							Text:      "Is there a direct correlation between provided resources and rewards?",
							Rationale: "Looks for subnets where more hardware equals more TAO",
							Weight:    2.0,
						},
						{
							ID:        "resource_redundancy",
							Text:      "Is distributed availability or redundancy a core feature?",
							Rationale: "Evaluates if reliability and uptime are one of the subnet's selling points",
							Weight:    1.0,
						},
					},
				},
			},
		},
		Criteria: []Criterion{
			{ID: "current_revenue", Name: "Current Revenue", Impact: "Evaluates existing monetization", Weight: 0.5, TwoSided: true},
			{ID: "revenue_prospects", Name: "Revenue Prospects (6 months)", Impact: "Assesses short-term financial viability", Weight: 1.0, TwoSided: true},
			{ID: "team_quantifiable", Name: "Team Quantifiable", Impact: "Measures team size and composition transparency", Weight: 0.7, TwoSided: true},
			{ID: "team_track_record", Name: "Team Track Record", Impact: "Evaluates team's experience in the field and within the ecosystem", Weight: 0.7, TwoSided: true},
			{ID: "competitive_viability", Name: "Competitive Viability", Impact: "Assesses market position against competitors", Weight: 1.0, TwoSided: true},
			{ID: "tam", Name: "Total Addressable Market", Impact: "Evaluates market size and growth potential", Weight: 1.0},
			{ID: "roadmap_quality", Name: "Roadmap Quality", Impact: "Assesses clarity and feasibility of development plans", Weight: 0.2},
			{ID: "documentation_quality", Name: "Documentation Quality", Impact: "Measures completeness and clarity of technical documentation", Weight: 0.1},
			{ID: "ui_ux", Name: "UI/UX Quality", Impact: "Evaluates user interface design and experience", Weight: 0.5, TwoSided: true},
			{ID: "token_economics", Name: "Token Economics", Impact: "Assesses additional token usage (negative impact)", Weight: -2.0},
			{ID: "github_activity", Name: "GitHub Activity", Impact: "Measures development pace and community engagement", Weight: 0.1, TwoSided: true},
			{ID: "twitter_activity", Name: "Twitter Activity", Impact: "Evaluates social presence and communication", Weight: 0.1, TwoSided: true},
			{ID: "dtao_visibility", Name: "dTAO Visibility", Impact: "Assesses proper promotion to dTAO", Weight: 0.3},
			{ID: "integration_quality", Name: "Third-party Integration Quality", Impact: "Evaluates quality of external integrations", Weight: 0.5},
			{ID: "partnerships", Name: "Established Project Partnerships", Impact: "Assesses alliances with recognized projects", Weight: 0.5},
			{ID: "uniqueness", Name: "Subnet Uniqueness", Impact: "Evaluates differentiation from other subnets", Weight: 0.5},
			{ID: "evm_leverage", Name: "EVM Leverage", Impact: "Assesses utilization of the Ethereum Virtual Machine", Weight: 1.0},
			{ID: "miner_rewards", Name: "Miner Rewards Structure", Impact: "Evaluates if miners' rewards are slashed (negative impact)", Weight: -0.5},
			{ID: "cross_subnet", Name: "Cross-subnet Integration Potential", Impact: "Assesses ability to integrate with and improve other subnets", Weight: 1.5},
			{ID: "validator_incentivization", Name: "Validator Incentivization", Impact: "Evaluates encouragement for running validators", Weight: 0.5},
		},
	}
}
