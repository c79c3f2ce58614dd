package services

// Services defined in this package:
// - StudentService: Handles student profile operations
// - MentorService: Handles mentor profiles, search, verification, and uploads
// - CommunityService: Handles communities and membership lifecycle
// - MatchingService: Handles mentor matching, community recommendations,
//   matching requests, and derived mentor statistics
