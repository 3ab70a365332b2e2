package platform

// Package platform contains OS and filesystem glue: home/Downloads/Documents
// resolution, URL shape checks, filename sanitising and collision avoidance,
// media type sniffing, and revealing finished files in the file manager.
