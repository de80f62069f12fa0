package catalogue

// Wire names follow the results service, which reports unaccented spellings.
// Accented spellings are kept as display labels only.
var defaultGenres = []Genre{
	{
		Name: "Rock", Label: "Rock", Color: "#d84315",
		SamplePath: "Sons/Rock.mp3", CoverPath: "Capas/Rock.jpeg",
		Description: "🎸 O Rock é marcado por guitarras elétricas e bateria intensa, com bandas lendárias e muita energia.",
		Track:       Track{Title: "Sweet Child O’ Mine", Artist: "Guns N’ Roses", Album: "Appetite For Destruction"},
	},
	{
		Name: "Pop", Label: "Pop", Color: "#ff4081",
		SamplePath: "Sons/Pop.mp3", CoverPath: "Capas/Pop.jpeg",
		Description: "🎤 O Pop traz melodias cativantes e grande apelo popular, dominando as paradas musicais.",
		Track:       Track{Title: "Thriller", Artist: "Michael Jackson", Album: "Thriller"},
	},
	{
		Name: "Funk", Label: "Funk", Color: "#ff9100",
		SamplePath: "Sons/Funk.mp3", CoverPath: "Capas/Funk.jpeg",
		Description: "🎶 O Funk é o ritmo dançante das periferias, com batidas fortes e muito swing.",
		Track:       Track{Title: "Vou Desafiar Você", Artist: "MC Sapao, DJ Detonna", Album: "Vou Desafiar Você"},
	},
	{
		Name: "Sertanejo", Label: "Sertanejo", Color: "#8bc34a",
		SamplePath: "Sons/Sertanejo.mp3", CoverPath: "Capas/Sertanejo.jpeg",
		Description: "🤠 O Sertanejo fala de amor, saudade e vida no interior, com duplas e vozes marcantes.",
		Track:       Track{Title: "Evidências", Artist: "Chitãozinho & Xororó", Album: "Cowboy do Asfalto"},
	},
	{
		Name: "Piseiro", Label: "Piseiro", Color: "#ffb300",
		SamplePath: "Sons/Piseiro.mp3", CoverPath: "Capas/Piseiro.jpeg",
		Description: "💃 O Piseiro é o som das festas nordestinas, alegre e contagiante.",
		Track:       Track{Title: "Letícia", Artist: "Zé Vaqueiro", Album: "O Original"},
	},
	{
		Name: "Axe", Label: "Axé", Color: "#ff6f00",
		SamplePath: "Sons/Axé.mp3", CoverPath: "Capas/Axé.jpeg",
		Description: "🌞 O Axé é pura energia baiana, perfeito para dançar e celebrar.",
		Track:       Track{Title: "100% Você - Ao Vivo", Artist: "Bell Marques", Album: "Só as Antigas (Ao Vivo)"},
	},
	{
		Name: "Samba", Label: "Samba", Color: "#795548",
		SamplePath: "Sons/Samba.mp3", CoverPath: "Capas/Samba.jpeg",
		Description: "🥁 O Samba é o ritmo da alma brasileira, com percussão marcante e letras cheias de emoção.",
		Track:       Track{Title: "Cheia de Manias", Artist: "Raça Negra", Album: "Cheia de Manias"},
	},
	{
		Name: "Eletronica", Label: "Eletrônica", Color: "#00bcd4",
		SamplePath: "Sons/Eletrônica.mp3", CoverPath: "Capas/Eletrônica.jpg",
		Description: "🎧 A Eletrônica é moderna, com batidas pulsantes e atmosferas digitais vibrantes.",
		Track:       Track{Title: "Titanium (feat. Sia)", Artist: "David Guetta, Sia", Album: "Nothing but the Beat (Ultimate Edition)"},
	},
	{
		Name: "Forro", Label: "Forró", Color: "#ff7043",
		SamplePath: "Sons/Forró.mp3", CoverPath: "Capas/Forró.jpeg",
		Description: "🎼 O Forró é a dança típica do Nordeste, com sanfona, zabumba e muito calor humano.",
		Track:       Track{Title: "Planeta de Cores", Artist: "Forrozao Tropykalia", Album: "Planeta de Cores, Vol. 7"},
	},
	{
		Name: "Rap", Label: "Rap", Color: "#9c27b0",
		SamplePath: "Sons/Rap.mp3", CoverPath: "Capas/Rap.jpeg",
		Description: "🎙️ O Rap traz rimas intensas e mensagens sociais fortes, com batidas urbanas.",
		Track:       Track{Title: "Negro Drama", Artist: "Racionais MC’s", Album: "Nada Como um Dia Após o Outro Dia, Vol. 1 & 2"},
	},
	{
		Name: "MPB", Label: "MPB", Color: "#4caf50",
		SamplePath: "Sons/MPB.mp3", CoverPath: "Capas/MPB.jpeg",
		Description: "🎵 A MPB mistura ritmos nacionais com poesia e melodias sofisticadas.",
		Track:       Track{Title: "Garoto de Aluguel (Taxi Boy) [Ao Vivo]", Artist: "Zé Ramalho", Album: "Zé Ramalho Ao Vivo 2005 (Deluxe)"},
	},
	{
		Name: "Pagode", Label: "Pagode", Color: "#ffca28",
		SamplePath: "Sons/Pagode.mp3", CoverPath: "Capas/Pagode.jpeg",
		Description: "🪕 O Pagode é o samba mais leve e romântico, ideal para cantar junto.",
		Track:       Track{Title: "Deixa Acontecer - Ao Vivo", Artist: "Grupo Revelação", Album: "Ao Vivo - Na Palma da Mão"},
	},
	{
		Name: "Reggae", Label: "Reggae", Color: "#00acc1",
		SamplePath: "Sons/Reggae.mp3", CoverPath: "Capas/Reggae.jpg",
		Description: "🌴 O Reggae tem vibrações tranquilas e mensagens de paz e liberdade.",
		Track:       Track{Title: "Is This Love", Artist: "Bob Marley & The Wailers", Album: "Kaya"},
	},
}

// Default returns the built-in thirteen-genre catalogue.
func Default() *Catalogue {
	return MustNew(defaultGenres)
}
