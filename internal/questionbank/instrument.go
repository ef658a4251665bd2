package questionbank

import "mentorbot/internal/model"

// item builds one instrument question. Options and interpretations are given
// in label order A..D. Every item maps its labels to the same types
// (A analytical, B emotional, C practical, D creative), mirroring the uniform
// option ordering of the instrument.
func item(id, text string, options, notes [4]string) model.Question {
	return model.Question{
		ID:   id,
		Text: text,
		Options: map[model.OptionLabel]string{
			model.OptionA: options[0],
			model.OptionB: options[1],
			model.OptionC: options[2],
			model.OptionD: options[3],
		},
		Interpretations: map[model.OptionLabel]string{
			model.OptionA: notes[0],
			model.OptionB: notes[1],
			model.OptionC: notes[2],
			model.OptionD: notes[3],
		},
		Weights: map[model.OptionLabel]model.PersonalityType{
			model.OptionA: model.TypeAnalytical,
			model.OptionB: model.TypeEmotional,
			model.OptionC: model.TypePractical,
			model.OptionD: model.TypeCreative,
		},
	}
}

var instrumentQuestions = []model.Question{
	item("q01", "When you run into a difficult problem, what is your first instinct?",
		[4]string{
			"Break it into parts and study each one",
			"Think about how it affects the people involved",
			"Start acting on the most obvious next step",
			"Look for an angle nobody else has tried",
		},
		[4]string{
			"You lead with structured analysis; decomposing a problem is how you make it manageable.",
			"You read situations through their human impact before anything else.",
			"Momentum is your tool: you learn by doing, not by deliberating.",
			"You trust the unexpected route; novelty is where you find leverage.",
		}),
	item("q02", "Which compliment would please you the most?",
		[4]string{
			"\"You always get to the heart of the matter\"",
			"\"People feel understood around you\"",
			"\"You get things done, no matter what\"",
			"\"I've never met anyone who thinks like you\"",
		},
		[4]string{
			"Precision of thought is central to how you want to be seen.",
			"Being a safe, understanding presence is part of your identity.",
			"Reliability and results are what you want remembered about you.",
			"Originality is the trait you most want recognized.",
		}),
	item("q03", "A free Saturday with no obligations: what do you actually do?",
		[4]string{
			"Read or watch something that teaches me a subject in depth",
			"Spend unhurried time with someone close to me",
			"Knock out the backlog: errands, repairs, organizing",
			"Make something: write, draw, cook, build",
		},
		[4]string{
			"Unstructured time pulls you toward learning; knowledge restores you.",
			"Connection recharges you more than any activity done alone.",
			"Visible progress relaxes you; a cleared list is genuine rest.",
			"Creating is your default state when nothing demands otherwise.",
		}),
	item("q04", "In a group project, which role do you slide into without being asked?",
		[4]string{
			"The one who maps out the logic and spots the flaws",
			"The one who keeps the group from falling apart",
			"The one who tracks tasks and keeps things moving",
			"The one who throws out ideas the others wouldn't dare",
		},
		[4]string{
			"You naturally take the architect's seat: structure first, then work.",
			"You are the group's emotional infrastructure, often invisibly.",
			"You become the engine room; coordination comes effortlessly to you.",
			"You serve as the group's source of divergent thinking.",
		}),
	item("q05", "What annoys you the most in other people?",
		[4]string{
			"Sloppy reasoning and jumping to conclusions",
			"Coldness and indifference to how others feel",
			"Endless talk with no follow-through",
			"Refusing to consider anything new",
		},
		[4]string{
			"Intellectual carelessness strikes you as a form of disrespect.",
			"Emotional blindness in others genuinely wears on you.",
			"You measure people by delivery, and all-talk frustrates you.",
			"Closed-mindedness feels to you like a door slammed on possibility.",
		}),
	item("q06", "How do you prefer to learn something new?",
		[4]string{
			"From first principles: theory, then practice",
			"From a person: conversation, mentorship, stories",
			"By immediately trying it on a real task",
			"By experimenting and breaking the rules to see what happens",
		},
		[4]string{
			"You need the underlying model before details will stick.",
			"Knowledge lands for you when it travels through relationships.",
			"Hands-on practice is your fastest and most natural channel.",
			"Play and experimentation are how you internalize anything.",
		}),
	item("q07", "A friend comes to you upset about a conflict at work. What do you do first?",
		[4]string{
			"Ask questions until the situation is fully clear",
			"Listen and let them feel heard before anything else",
			"Suggest a concrete step they could take tomorrow",
			"Reframe it: show them a completely different way to see it",
		},
		[4]string{
			"You help by clarifying: a well-understood problem is half-solved.",
			"You know that being heard often matters more than being advised.",
			"Your care takes the form of actionable next steps.",
			"You offer perspective shifts; your gift is the reframe.",
		}),
	item("q08", "Which kind of book or film do you pick when it's just for you?",
		[4]string{
			"Popular science, history, a dense documentary",
			"A character drama about relationships and inner life",
			"A biography of someone who built something real",
			"Something strange: surrealism, experimental fiction",
		},
		[4]string{
			"Even your leisure feeds your appetite for understanding.",
			"Inner worlds are the landscape you most enjoy exploring.",
			"Stories of building and doing resonate with your core.",
			"You seek out art that bends the frame, not fills it.",
		}),
	item("q09", "What were you praised for as a child?",
		[4]string{
			"Asking questions adults couldn't answer",
			"Being kind and noticing when someone was left out",
			"Being responsible beyond my years",
			"My imagination and the things I made up",
		},
		[4]string{
			"Your curiosity showed early and never left.",
			"Empathy has been your signature since childhood.",
			"Dependability is a lifelong thread in your character.",
			"Your imagination was visible before you could name it.",
		}),
	item("q10", "You have to make an important decision. What do you trust the most?",
		[4]string{
			"A careful comparison of options and consequences",
			"How each option feels when I imagine living with it",
			"What has worked before, for me or for others",
			"The option that excites me, even if it's unproven",
		},
		[4]string{
			"You decide by weighing; your confidence comes from the comparison itself.",
			"Your felt sense is a legitimate instrument, and you know how to use it.",
			"Precedent is your compass; you respect what reality has already tested.",
			"You treat excitement as information; aliveness points your way.",
		}),
	item("q11", "What drains your energy fastest?",
		[4]string{
			"Tasks with no intellectual content at all",
			"Environments where feelings must be hidden",
			"Vague situations where nothing concrete happens",
			"Rigid routines with no room to improvise",
		},
		[4]string{
			"Your mind needs material to chew on; emptiness exhausts you.",
			"Emotional suppression costs you more energy than any work does.",
			"You run on traction; ambiguity without action depletes you.",
			"Repetition without variation starves the part of you that creates.",
		}),
	item("q12", "How do you take criticism of your work?",
		[4]string{
			"Well, if it's specific and logically argued",
			"It stings first; I need a moment before I can use it",
			"Fine: tell me what to fix and I'll fix it",
			"Depends: criticism of craft is fine, of vision is harder",
		},
		[4]string{
			"You separate ideas from ego when the critique is rigorous.",
			"You process feedback through feeling first; that's depth, not weakness.",
			"You convert criticism directly into a task list; little drama.",
			"Your vision is personal territory; you defend it as part of yourself.",
		}),
	item("q13", "A deadline is suddenly moved up. Your reaction?",
		[4]string{
			"Re-plan: what can be cut, what's truly essential?",
			"Check in with the team: pressure hits people differently",
			"Put my head down and grind through it",
			"Find a shortcut that changes the game entirely",
		},
		[4]string{
			"Under pressure you reach for prioritization, not panic.",
			"Even in crunch you keep one eye on the humans.",
			"Pressure converts cleanly into output for you.",
			"Constraints trigger your inventiveness rather than stress.",
		}),
	item("q14", "You move to a new city. What's your first week like?",
		[4]string{
			"Research: maps, history, how everything works here",
			"Finding the people: neighbors, a familiar face, a community",
			"Setting up: bank, transport, gym, grocery routes",
			"Wandering without a plan to feel the city's character",
		},
		[4]string{
			"You settle in by understanding the system around you.",
			"A place becomes home for you only through its people.",
			"You build infrastructure first; comfort follows logistics.",
			"You meet places like personalities, through open exploration.",
		}),
	item("q15", "What makes a gift good, when you're the one giving it?",
		[4]string{
			"It matches an interest they've mentioned: I pay attention",
			"It says something about what they mean to me",
			"It's something they actually need and will use",
			"Nobody else would have thought of it",
		},
		[4]string{
			"Your attention to detail is itself the gift.",
			"You give meaning wrapped in objects.",
			"Usefulness is your love language.",
			"Surprise and originality are how you show you care.",
		}),
	item("q16", "In long meetings you usually…",
		[4]string{
			"Take structured notes and question weak assumptions",
			"Watch the room: who's frustrated, who's checked out",
			"Push for decisions and owners before time runs out",
			"Doodle, drift, and surface with an idea from left field",
		},
		[4]string{
			"You are the room's resident skeptic, in the best sense.",
			"You read the meeting under the meeting.",
			"You are the reason the meeting produces anything at all.",
			"Your drifting attention is a search process, not absence.",
		}),
	item("q17", "Your attitude toward risk?",
		[4]string{
			"Acceptable when the odds are understood",
			"I weigh it by who could get hurt",
			"Small tested steps beat big leaps",
			"Without risk nothing interesting ever happens",
		},
		[4]string{
			"You don't avoid risk; you insist on pricing it first.",
			"Risk is a moral question for you before a mathematical one.",
			"You de-risk by iteration; prudence is your method.",
			"You treat risk as the admission fee for a meaningful life.",
		}),
	item("q18", "Which daily routine sounds closest to ideal?",
		[4]string{
			"Deep-focus morning, connected reading every evening",
			"Work woven together with real conversations",
			"A well-oiled schedule that ends with visible results",
			"No two days alike; the structure emerges as I go",
		},
		[4]string{
			"Protected thinking time is the spine of your ideal day.",
			"A day without genuine contact feels wasted to you.",
			"Rhythm and measurable closure give your days their shape.",
			"Your ideal structure is the absence of imposed structure.",
		}),
	item("q19", "When you tell a story about something that happened to you, you emphasize…",
		[4]string{
			"The interesting mechanics of how it unfolded",
			"What everyone was feeling at each moment",
			"What was actually accomplished or lost",
			"The absurd details that made it one of a kind",
		},
		[4]string{
			"You narrate causally; your stories are explanations in disguise.",
			"You narrate emotionally; your stories carry their own weather.",
			"You narrate by outcomes; the point is what changed.",
			"You narrate texture; the strange detail is the story.",
		}),
	item("q20", "Your workspace tends to be…",
		[4]string{
			"Organized around reference material I actually consult",
			"Full of photos and objects tied to people I love",
			"Minimal: what the current task needs and nothing else",
			"Chaotic to others, a living idea-bed to me",
		},
		[4]string{
			"Your environment is an extension of your thinking apparatus.",
			"You anchor yourself with tokens of relationships.",
			"You externalize focus; the empty desk is a decision.",
			"Your mess is compost; ideas grow out of it.",
		}),
	item("q21", "A friend asks for advice on a big life choice. Your style is to…",
		[4]string{
			"Lay out the trade-offs as clearly as I can",
			"Help them hear what they already want",
			"Tell them what I'd literally do in their place",
			"Ask a question so strange it unlocks the whole thing",
		},
		[4]string{
			"You advise like an analyst: clarity is your gift to others.",
			"You advise like a mirror: you return people to themselves.",
			"You advise like a practitioner: concrete and committal.",
			"You advise like a trickster: the sideways question is your tool.",
		}),
	item("q22", "When something you attempted fails, your inner monologue says…",
		[4]string{
			"\"Where exactly was the reasoning wrong?\"",
			"\"Who do I need to talk this through with?\"",
			"\"Fine. What's the next attempt?\"",
			"\"That wasn't failure, that was material.\"",
		},
		[4]string{
			"You metabolize failure as information about your model.",
			"You metabolize failure socially; processing aloud heals you.",
			"You metabolize failure by immediate re-engagement.",
			"You metabolize failure as raw material for the next thing.",
		}),
	item("q23", "What kind of question keeps you up at night, pleasantly?",
		[4]string{
			"How something genuinely works, all the way down",
			"Why a person in my life acted the way they did",
			"How to finally pull off a plan I've been circling",
			"What something could become if I pushed it further",
		},
		[4]string{
			"Mechanism is your midnight entertainment.",
			"Other minds are the puzzle you can't put down.",
			"Execution plans run in your background at all hours.",
			"Possibility is the engine that keeps you awake, happily.",
		}),
	item("q24", "You start a personal project. What's true two months later?",
		[4]string{
			"I understand the domain far better than I planned to",
			"I've pulled three friends into it and it's become ours",
			"It's finished, or on a schedule to be finished",
			"It has mutated into something much stranger and better",
		},
		[4]string{
			"Your projects are expeditions into understanding.",
			"Your projects become communities almost by accident.",
			"Your projects converge; shipping is in your nature.",
			"Your projects evolve; mutation is your method.",
		}),
	item("q25", "How would your closest friends describe you in one phrase?",
		[4]string{
			"\"The smartest person I know\"",
			"\"The one I call at 3 a.m.\"",
			"\"The one who actually does what they say\"",
			"\"The weird one, affectionately\"",
		},
		[4]string{
			"Your circle treats your judgment as a resource.",
			"You are where people bring their unguarded selves.",
			"Your word has weight because it converts into action.",
			"Your strangeness is precisely what people keep you for.",
		}),
	item("q26", "What motivates you to push through a hard stretch?",
		[4]string{
			"The promise of finally understanding something",
			"Not letting down the people counting on me",
			"The finish line itself: closure is fuel",
			"Curiosity about what I'll have made by the end",
		},
		[4]string{
			"Understanding is the reward that bankrolls your persistence.",
			"Loyalty powers you when willpower runs out.",
			"Completion pulls you forward like gravity.",
			"You endure for the artifact; the made thing at the end.",
		}),
	item("q27", "An unexpected free afternoon appears in your week. You feel…",
		[4]string{
			"Eager: there's a rabbit hole I've been meaning to go down",
			"Like calling someone I've missed",
			"Like using it: the list never sleeps",
			"Open: the best afternoons are unplanned",
		},
		[4]string{
			"Gift time goes straight to your curiosity account.",
			"Spare hours gravitate toward your relationships.",
			"You default to productive motion even in slack time.",
			"Unstructured time is your natural habitat, not a gap.",
		}),
	item("q28", "Assembling furniture with printed instructions, you…",
		[4]string{
			"Read all of them first, then execute in order",
			"Make it a shared activity: it's about the company",
			"Glance once and build; hands know the way",
			"Ignore half of it and improve the design as I go",
		},
		[4]string{
			"You respect documented systems and move through them precisely.",
			"Any task is secondary to the togetherness around it.",
			"Your competence is kinesthetic; you think with your hands.",
			"Specifications are suggestions; you co-author everything you touch.",
		}),
	item("q29", "Where do your best ideas come from?",
		[4]string{
			"Deliberate thinking: I sit down and work them out",
			"Conversations: other people strike the spark",
			"Doing the work: ideas surface mid-task",
			"Nowhere traceable: showers, walks, the edge of sleep",
		},
		[4]string{
			"Your creativity is an act of will, summoned by focus.",
			"Your thinking is dialogical; you ideate in company.",
			"Your insight rides on your hands being busy.",
			"Your ideas arrive unbidden; your job is staying receptive.",
		}),
	item("q30", "Under real pressure, when the stakes are high, you become…",
		[4]string{
			"Colder and clearer; emotion steps aside",
			"More attuned; I steady the people around me",
			"Pure execution; I move and don't stop",
			"Looser, oddly: pressure frees me to gamble",
		},
		[4]string{
			"Crisis sharpens you into an instrument of analysis.",
			"You are the person others stabilize around in a storm.",
			"High stakes strip you down to flawless doing.",
			"Danger unlocks your most inventive self.",
		}),
	item("q31", "How do you prefer to celebrate a win?",
		[4]string{
			"A quiet debrief: savoring how it was pulled off",
			"With everyone who was part of it, emotionally and loudly",
			"Briefly: then on to what the win makes possible",
			"By marking it somehow: a ritual, an object, a story",
		},
		[4]string{
			"Your victories taste best when replayed and understood.",
			"A win isn't real to you until it's shared.",
			"You celebrate with momentum; wins are stepping stones.",
			"You commemorate; turning moments into meaning is your craft.",
		}),
	item("q32", "On a long trip, the part you secretly enjoy most is…",
		[4]string{
			"Learning how the place fits together: language, history, systems",
			"The strangers who briefly become friends",
			"The logistics going exactly to plan",
			"The detour that makes the whole journey",
		},
		[4]string{
			"You travel as a student; places are texts you read.",
			"You travel for encounters; the map is just an excuse.",
			"Executed plans are a pleasure you don't apologize for.",
			"You trust detours more than itineraries, and they repay you.",
		}),
	item("q33", "What do you want people to say about you in thirty years?",
		[4]string{
			"\"They really understood things\"",
			"\"They made people's lives warmer\"",
			"\"They built things that lasted\"",
			"\"There was no one else like them\"",
		},
		[4]string{
			"Your legacy, as you imagine it, is understanding itself.",
			"You measure a life by the warmth it leaves behind.",
			"Durability is your definition of mattering.",
			"Singularity, being irreplaceable, is your quiet ambition.",
		}),
	item("q34", "First thirty minutes after waking up, ideally…",
		[4]string{
			"Coffee and reading something substantive, in silence",
			"A slow, warm start with whoever shares my life",
			"Up, moving, first task done before most people's alarm",
			"Drifting: half-dreams are where my day's ideas begin",
		},
		[4]string{
			"Your mind boots through input; mornings are for feeding it.",
			"You wake into connection; warmth orients your day.",
			"You start days the way you live them: in motion.",
			"You guard the threshold state; it's your creative wellspring.",
		}),
}
