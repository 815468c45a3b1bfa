package devserver

import "github.com/five82/petgallery/internal/petstore"

// SeedPets is a small catalogue for local runs.
func SeedPets() []petstore.Pet {
	return []petstore.Pet{
		{
			Name:        "Rex",
			Species:     "Dog",
			Breed:       "Labrador Retriever",
			Gender:      "Male",
			Image:       "https://images.dog.ceo/breeds/labrador/n02099712_3503.jpg",
			Description: "Friendly and energetic. Loves fetch and long walks by the river.",
			Price:       350,
		},
		{
			Name:        "Mia",
			Species:     "Cat",
			Breed:       "Siamese",
			Gender:      "Female",
			Image:       "",
			Description: "Calm indoor cat who likes sunny windowsills.",
			Price:       120.5,
		},
		{
			Name:        "Kiwi",
			Species:     "Bird",
			Breed:       "Budgerigar",
			Gender:      "Male",
			Image:       "https://example.invalid/kiwi.png",
			Description: "Chatty and curious. Knows a few words.",
			Price:       45,
		},
	}
}
