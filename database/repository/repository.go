package repository

import (
	bookingRepo "fundilink/database/repository/booking"
	listingRepo "fundilink/database/repository/listing"
	providerRepo "fundilink/database/repository/provider"
)

// Re-export the ProviderRepository interface and constructor.
type ProviderRepository = providerRepo.ProviderRepository

type ProviderSearchCriteria = providerRepo.ProviderSearchCriteria

var NewMongoProviderRepo = providerRepo.NewMongoProviderRepo

// Re-export the ListingRepository interface and constructor.
type ListingRepository = listingRepo.ListingRepository

type ListingSearchCriteria = listingRepo.ListingSearchCriteria

var NewMongoListingRepo = listingRepo.NewMongoListingRepo

// Re-export the BookingRepository interface and constructor.
type BookingRepository = bookingRepo.BookingRepository

var NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo
